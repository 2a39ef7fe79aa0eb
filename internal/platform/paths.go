package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath cleans a path, preserving the UNC prefix on Windows
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, `\\`) && !strings.HasPrefix(normalized, `\\`) {
			normalized = `\\` + normalized
		}
	}

	return normalized
}

// Resolve returns the cleaned absolute form of path with symlinks evaluated
// when possible
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	return NormalizePath(abs), nil
}

// SamePath reports whether two resolved paths name the same location.
// Comparison is case-insensitive on Windows and macOS.
func SamePath(a, b string) bool {
	if caseInsensitive() {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// IsWithin reports whether child lies strictly below parent. Both must be resolved.
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if caseInsensitive() {
		rel2, err := filepath.Rel(strings.ToLower(parent), strings.ToLower(child))
		if err == nil {
			rel = rel2
		}
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func caseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

package extensions

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Set is an immutable set of file extensions, each starting with a dot.
// Matching is exact, so case sensitivity follows the strings as written.
type Set struct {
	exts map[string]struct{}
}

// New builds a set from raw entries, normalizing each one
func New(entries ...string) Set {
	s := Set{exts: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if n := Normalize(e); n != "" {
			s.exts[n] = struct{}{}
		}
	}
	return s
}

// Normalize trims whitespace and adds a leading dot. Blank entries normalize to "".
func Normalize(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Parse reads a free-form extension list: entries separated by commas and/or newlines
func Parse(r io.Reader) (Set, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entries = append(entries, strings.Split(scanner.Text(), ",")...)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read extension list: %w", err)
	}
	return New(entries...), nil
}

// Load parses the extension list file at path on the given filesystem
func Load(fs afero.Fs, path string) (Set, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to open extension list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Contains reports whether ext is in the set
func (s Set) Contains(ext string) bool {
	_, ok := s.exts[ext]
	return ok
}

// Len returns the number of distinct extensions
func (s Set) Len() int {
	return len(s.exts)
}

// Sorted returns the extensions in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.exts))
	for e := range s.exts {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// String implements fmt.Stringer
func (s Set) String() string {
	return strings.Join(s.Sorted(), ",")
}

// Ext returns the extension of a file name: the suffix from the last dot,
// ignoring leading dots so that ".bashrc" has no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	trimmed := strings.TrimLeft(base, ".")
	i := strings.LastIndex(trimmed, ".")
	if i < 0 {
		return ""
	}
	return trimmed[i:]
}

// Stem returns the file name without its extension
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, Ext(base))
}

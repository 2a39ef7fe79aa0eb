package relocate

import (
	"path/filepath"
	"strings"
)

// excludeRule is one compiled exclude pattern
type excludeRule struct {
	pattern string
	dirOnly bool // pattern ended with "/"
	anyDeep bool // pattern started with "**/"
	hasPath bool // pattern contains a separator and matches the whole relative path
}

// Excluder decides whether a walked path is skipped.
// Patterns support:
//   - Simple globs matched against the base name: *.tmp, Thumbs.db
//   - Directory patterns matched at any depth: .git/, @eaDir/
//   - Relative path globs: cache/*, photos/raw/*.cr2
//   - Any-depth globs: **/tmp/*
type Excluder struct {
	rules []excludeRule
}

// NewExcluder compiles the exclude patterns; blank patterns are ignored
func NewExcluder(patterns []string) *Excluder {
	e := &Excluder{}
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		if p == "" {
			continue
		}

		rule := excludeRule{}
		if strings.HasSuffix(p, "/") {
			rule.dirOnly = true
			p = strings.TrimSuffix(p, "/")
		}
		if strings.HasPrefix(p, "**/") {
			rule.anyDeep = true
			p = strings.TrimPrefix(p, "**/")
		}
		rule.hasPath = strings.Contains(p, "/")
		rule.pattern = p
		e.rules = append(e.rules, rule)
	}
	return e
}

// Empty reports whether no pattern was configured
func (e *Excluder) Empty() bool {
	return e == nil || len(e.rules) == 0
}

// Match reports whether relativePath (relative to the source root) is excluded.
// isDir tells whether the entry is a directory; directory patterns only match directories.
func (e *Excluder) Match(relativePath string, isDir bool) bool {
	if e.Empty() {
		return false
	}

	rel := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	for _, r := range e.rules {
		if r.dirOnly && !isDir {
			continue
		}

		switch {
		case r.hasPath && r.anyDeep:
			if matchAnyDepth(rel, r.pattern) {
				return true
			}
		case r.hasPath:
			if ok, _ := filepath.Match(r.pattern, rel); ok {
				return true
			}
		default:
			if ok, _ := filepath.Match(r.pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// matchAnyDepth checks the pattern against every window of consecutive path components
func matchAnyDepth(rel, pattern string) bool {
	parts := strings.Split(rel, "/")
	want := strings.Count(pattern, "/") + 1
	if len(parts) < want {
		return false
	}
	for i := 0; i+want <= len(parts); i++ {
		candidate := strings.Join(parts[i:i+want], "/")
		if ok, _ := filepath.Match(pattern, candidate); ok {
			return true
		}
	}
	return false
}

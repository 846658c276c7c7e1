package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// patternSet matches slash-separated relative paths against glob patterns.
// A pattern matches the whole path or its base name; "**" crosses
// directories and a leading "**/" also matches at the top level.
type patternSet struct {
	globs []glob.Glob
}

func compilePatterns(patterns []string) (*patternSet, error) {
	set := &patternSet{}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(filepath.ToSlash(pattern))
		if pattern == "" {
			continue
		}

		variants := []string{strings.TrimPrefix(pattern, "./")}
		if rest, ok := strings.CutPrefix(variants[0], "**/"); ok {
			variants = append(variants, rest)
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			set.globs = append(set.globs, g)
		}
	}

	return set, nil
}

func (s *patternSet) empty() bool {
	return s == nil || len(s.globs) == 0
}

// match reports whether relPath matches any pattern. Directories are also
// tried with a trailing slash so that "vendor/**" matches "vendor".
func (s *patternSet) match(relPath string, isDir bool) bool {
	if s.empty() {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	base := relPath[strings.LastIndexByte(relPath, '/')+1:]

	for _, g := range s.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
		if isDir && g.Match(relPath+"/") {
			return true
		}
	}

	return false
}

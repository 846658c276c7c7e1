// Package runner discovers Python files and checks them concurrently.
package runner

import (
	"strings"

	"github.com/yaklabco/pystyle/pkg/config"
)

// Options describes one multi-file run.
type Options struct {
	// Paths are files or directories to check. Relative entries resolve
	// against WorkingDir; none means the working directory itself.
	Paths      []string
	WorkingDir string

	// Extensions select files inside directories. Entries match
	// case-insensitively and may omit the leading dot.
	Extensions []string

	// IncludeGlobs narrow directory walks to matching relative paths.
	// ExcludeGlobs drop files and prune directories, and also apply to
	// files named explicitly.
	IncludeGlobs []string
	ExcludeGlobs []string

	// Scripts adds extensionless files whose "#!" line runs Python.
	Scripts bool

	FollowSymlinks bool

	// Jobs bounds concurrent checks; <= 0 uses runtime.NumCPU().
	Jobs int

	Config *config.Config
}

// DefaultExtensions returns the extensions checked when none are configured.
func DefaultExtensions() []string {
	return []string{".py", ".pyi"}
}

// normalized fills defaults and canonicalizes extensions to a lowercase,
// dotted form.
func (o Options) normalized() Options {
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}

	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	o.Extensions = make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.Extensions = append(o.Extensions, ext)
	}

	return o
}

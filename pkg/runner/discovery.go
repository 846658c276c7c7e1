package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/pystyle/pkg/langdetect"
)

// discoverer holds the compiled criteria of one Discover call.
type discoverer struct {
	ctx     context.Context
	workDir string
	opts    Options
	include *patternSet
	exclude *patternSet

	// visited holds the resolved paths of walked directories so that a
	// followed symlink cycle terminates.
	visited map[string]bool
	files   []string
}

// Discover expands opts.Paths into a sorted, duplicate-free list of
// absolute file paths.
//
// A path named explicitly is returned unless an exclude pattern matches
// it. Inside directories a file is selected by extension, or as an
// extensionless Python script when opts.Scripts is set. Hidden entries
// and __pycache__ are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	opts = opts.normalized()

	workDir, err := absWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{ctx: ctx, workDir: workDir, opts: opts, visited: make(map[string]bool)}
	if d.include, err = compilePatterns(opts.IncludeGlobs); err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if d.exclude, err = compilePatterns(opts.ExcludeGlobs); err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	for _, arg := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if info.IsDir() {
			if err := d.walk(path); err != nil {
				return nil, err
			}
		} else if !d.exclude.match(d.rel(path), false) {
			d.files = append(d.files, path)
		}
	}

	// Overlapping arguments can name a file twice.
	slices.Sort(d.files)
	return slices.Compact(d.files), nil
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

func (d *discoverer) rel(path string) string {
	if rel, err := filepath.Rel(d.workDir, path); err == nil {
		return rel
	}
	return path
}

func (d *discoverer) walk(root string) error {
	if target, err := filepath.EvalSymlinks(root); err == nil {
		if d.visited[target] {
			return nil
		}
		d.visited[target] = true
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		switch {
		case walkErr != nil:
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		case path == root:
			return nil
		case entry.IsDir():
			return d.enterDir(path, entry.Name())
		case entry.Type()&fs.ModeSymlink != 0:
			if handled, err := d.followLink(path); handled || err != nil {
				return err
			}
		}

		if !strings.HasPrefix(entry.Name(), ".") && d.selects(path) {
			d.files = append(d.files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// enterDir returns filepath.SkipDir for directories that are never searched.
func (d *discoverer) enterDir(path, name string) error {
	if strings.HasPrefix(name, ".") || name == "__pycache__" || d.exclude.match(d.rel(path), true) {
		return filepath.SkipDir
	}
	return nil
}

// followLink handles a symlink met while walking. It reports handled for
// links to directories, which are walked only with FollowSymlinks, and for
// broken links. Links to files are left to the caller.
func (d *discoverer) followLink(path string) (bool, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return true, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return true, nil
	}
	if !info.IsDir() {
		return false, nil
	}
	if !d.opts.FollowSymlinks || d.exclude.match(d.rel(path), true) {
		return true, nil
	}
	// WalkDir does not descend into links, so walk the target directly.
	return true, d.walk(target)
}

// selects applies the pattern and extension criteria to a walked file.
func (d *discoverer) selects(path string) bool {
	rel := d.rel(path)
	if d.exclude.match(rel, false) {
		return false
	}
	if !d.include.empty() && !d.include.match(rel, false) {
		return false
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return d.opts.Scripts && isScript(path)
	}
	return slices.ContainsFunc(d.opts.Extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}

func isScript(path string) bool {
	head, err := langdetect.ReadHead(path)
	return err == nil && langdetect.IsPythonScript(head)
}

// Package fsutil reads and decodes Python source files.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// FileInfo describes a source file as it was when read.
type FileInfo struct {
	Path    string
	Mode    fs.FileMode
	ModTime time.Time
	Size    int64
}

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// IsBinary reports whether content holds a NUL byte, which no Python
// source in a supported encoding can.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// ReadFile reads path through one open handle, so the metadata and the
// bytes describe the same file. Failures wrap ErrNotFound,
// ErrPermissionDenied or ErrIsDirectory where they apply.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

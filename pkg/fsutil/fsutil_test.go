package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/pystyle/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "mod.py")
		content := []byte("import os\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
	})

	t.Run("returns ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), "/nonexistent/path/mod.py")
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns ErrIsDirectory for directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "empty", content: "", want: false},
		{name: "source", content: "def f():\n    return 1\n", want: false},
		{name: "latin-1", content: "s = '\xe9'\n", want: false},
		{name: "nul byte", content: "x = 1\x00\n", want: true},
		{name: "utf-16", content: "\xff\xfex\x00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.IsBinary([]byte(tt.content)); got != tt.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

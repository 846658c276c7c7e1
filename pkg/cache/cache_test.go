package cache_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/pystyle/pkg/cache"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
	"github.com/yaklabco/pystyle/pkg/template"
)

const version = "v1.0.0-test"

func sampleResult() *lint.FileResult {
	return &lint.FileResult{
		Path:     "ignored.py",
		Lines:    []string{"x=1\n"},
		Encoding: "utf-8",
		Diagnostics: []lint.Diagnostic{{
			Code:     "E225",
			RuleID:   "missing-whitespace-around-operator",
			Message:  "missing whitespace around operator",
			Severity: config.SeverityError,
			FilePath: "ignored.py",
			Line:     1,
			Column:   2,
		}},
		Counts:        map[string]int{"E225": 1},
		FirstMessages: map[string]string{"E225": "missing whitespace around operator"},
		Findings:      []template.Finding{{ID: "file-header", Message: "missing header", Guidance: "add one"}},
	}
}

func entryPath(dir string, content []byte, fingerprint string) string {
	return filepath.Join(dir, fmt.Sprintf("%016x.msgpack", cache.Key(content, fingerprint, version)))
}

func TestCache_StoreLookup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.New(dir, version)
	require.NoError(t, err)

	content := []byte("x=1\n")

	_, ok := c.Lookup(content, "fp")
	require.False(t, ok)

	require.NoError(t, c.Store(content, "fp", sampleResult()))
	assert.FileExists(t, entryPath(dir, content, "fp"))

	got, ok := c.Lookup(content, "fp")
	require.True(t, ok)
	require.Len(t, got.Diagnostics, 1)

	d := got.Diagnostics[0]
	assert.Equal(t, "E225", d.Code)
	assert.Equal(t, config.SeverityError, d.Severity)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 2, d.Column)
	assert.Empty(t, d.FilePath, "paths are not cached")
	assert.Equal(t, []string{"x=1\n"}, got.Lines)
	assert.Equal(t, map[string]int{"E225": 1}, got.Counts)
	assert.Equal(t, "file-header", got.Findings[0].ID)

	// Results are independent copies.
	got.Diagnostics[0].Code = "X000"
	got.Counts["E225"] = 9
	again, ok := c.Lookup(content, "fp")
	require.True(t, ok)
	assert.Equal(t, "E225", again.Diagnostics[0].Code)
	assert.Equal(t, 1, again.Counts["E225"])
}

func TestCache_Misses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.New(dir, version)
	require.NoError(t, err)

	content := []byte("x=1\n")
	require.NoError(t, c.Store(content, "fp", sampleResult()))

	_, ok := c.Lookup(content, "other-fp")
	assert.False(t, ok, "fingerprint is part of the key")

	_, ok = c.Lookup([]byte("x=2\n"), "fp")
	assert.False(t, ok, "content is part of the key")

	newer, err := cache.New(dir, "v2.0.0")
	require.NoError(t, err)
	_, ok = newer.Lookup(content, "fp")
	assert.False(t, ok, "version is part of the key")
}

func TestCache_DiskSurvivesRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte("x=1\n")

	first, err := cache.New(dir, version)
	require.NoError(t, err)
	require.NoError(t, first.Store(content, "fp", sampleResult()))

	second, err := cache.New(dir, version, cache.WithSize(4))
	require.NoError(t, err)

	got, ok := second.Lookup(content, "fp")
	require.True(t, ok)
	assert.Equal(t, "E225", got.Diagnostics[0].Code)
}

func TestCache_BadEntriesAreMisses(t *testing.T) {
	t.Parallel()

	schema, err := msgpack.Marshal(map[string]any{"schema": 99})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("not msgpack at all")},
		{name: "other schema", data: schema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			content := []byte("y = 2\n")
			require.NoError(t, os.WriteFile(entryPath(dir, content, "fp"), tt.data, 0o644))

			c, err := cache.New(dir, version)
			require.NoError(t, err)

			_, ok := c.Lookup(content, "fp")
			assert.False(t, ok)
		})
	}
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.New(dir, version)
	require.NoError(t, err)

	content := []byte("x=1\n")
	require.NoError(t, c.Store(content, "fp", sampleResult()))
	require.NoError(t, c.Clear())

	_, ok := c.Lookup(content, "fp")
	assert.False(t, ok)
	assert.NoFileExists(t, entryPath(dir, content, "fp"))
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c, err := cache.New(t.TempDir(), version, cache.WithSize(8))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			content := []byte(fmt.Sprintf("x = %d\n", i%4))
			assert.NoError(t, c.Store(content, "fp", sampleResult()))
			_, ok := c.Lookup(content, "fp")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestKey(t *testing.T) {
	t.Parallel()

	a := cache.Key([]byte("x"), "fp", "v1")
	assert.Equal(t, a, cache.Key([]byte("x"), "fp", "v1"))
	assert.NotEqual(t, a, cache.Key([]byte("x"), "fp", "v2"))
	assert.NotEqual(t, a, cache.Key([]byte("y"), "fp", "v1"))
	// The separators keep field boundaries apart.
	assert.NotEqual(t, cache.Key([]byte("ab"), "c", "v1"), cache.Key([]byte("a"), "bc", "v1"))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cache.DefaultDir("pystyle")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "pystyle"), dir)
}

func TestCache_WithPipeline(t *testing.T) {
	t.Parallel()

	c, err := cache.New(t.TempDir(), version)
	require.NoError(t, err)

	pipeline := lint.NewPipeline(lint.NewEngine(rules.Catalog())).WithCache(c)
	cfg := config.NewConfig()
	content := []byte("i=i+1\n")

	first, err := pipeline.ProcessContent(context.Background(), "a.py", content, cfg)
	require.NoError(t, err)
	require.NoError(t, first.CacheError)
	assert.False(t, first.Cached)

	second, err := pipeline.ProcessContent(context.Background(), "b.py", content, cfg)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "b.py", second.Path)
	assert.Equal(t, len(first.Diagnostics), len(second.Diagnostics))
	for i := range first.Diagnostics {
		assert.Equal(t, first.Diagnostics[i].Code, second.Diagnostics[i].Code)
		assert.Equal(t, "b.py", second.Diagnostics[i].FilePath)
	}
}

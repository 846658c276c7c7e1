package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
	"github.com/yaklabco/pystyle/pkg/runner"
)

func newRunner() *runner.Runner {
	return runner.New(lint.NewPipeline(lint.NewEngine(rules.Catalog())))
}

func selectConfig(codes ...string) *config.Config {
	cfg := config.NewConfig()
	cfg.Select = codes
	return cfg
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"clean.py":  "x = 1\n",
		"ops.py":    "i=i+1\nj=j+1\n",
		"pkg/c.py":  "f(a,b)\n",
		"README.md": "not python\n",
	})

	cfg := selectConfig("E225", "E231")
	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Config:     cfg,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "clean.py"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "ops.py"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "pkg/c.py"), result.Files[2].Path)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 3, stats.DiagnosticsTotal)
	assert.Equal(t, map[string]int{"E225": 2, "E231": 1}, stats.CodeCounts)
	assert.Equal(t, "missing whitespace after ','", stats.FirstMessages["E231"])
	assert.Equal(t, 3, stats.DiagnosticsBySeverity["error"])
	assert.Equal(t, []string{"E225", "E231"}, result.Codes())
	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".py"] = "import os, sys\nx=1 # note\ndef " + name + "():\n    return x+1\n"
	}
	writeTree(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Diagnostics, parallel.Files[i].Result.Diagnostics)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"good.py":   "x = 1\n",
		"binary.py": "x = 1\x00\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     selectConfig("E225"),
	})
	require.NoError(t, err, "one file's failure does not abort the run")

	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], lint.ErrDecodeFailure))
}

func TestRunner_Run_TokenizeErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"broken.py": "x = (\n"})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     selectConfig("E902"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.TokenizeErrors)
	assert.Equal(t, map[string]int{"E902": 1}, result.Stats.CodeCounts)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "x = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_Unreadable(t *testing.T) {
	t.Parallel()

	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"locked.py": "x = 1\n"})
	path := filepath.Join(dir, "locked.py")
	require.NoError(t, os.Chmod(path, 0o000))

	result, err := newRunner().Run(context.Background(), runner.Options{Paths: []string{path}, WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], lint.ErrPermissionDenied)
}

func TestRunner_Run_LogsFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"ops.py": "i=i+1\n"})

	var buf bytes.Buffer
	r := newRunner().WithLogger(logging.NewWithWriter(&buf, "debug"))

	_, err := r.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       1,
		Config:     selectConfig("E225"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "file checked")
	assert.Contains(t, out, "path="+filepath.Join(dir, "ops.py"))
	assert.Contains(t, out, "diagnostics=1")
}

//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/pystyle"

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"cmp": Bench.Compare,
	"par": Bench.Parity,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/pystyle when any Go source or module file changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/pystyle")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info stamped in.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/pystyle")
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the race-enabled suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Rules runs only the rule and tokenizer packages, the fast inner loop
// when changing a check.
func (Test) Rules() error {
	return sh.RunV("go", "test", "-race", "./pkg/lint/...", "./pkg/pytoken/...")
}

// Default runs golangci-lint with fixes applied.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint read-only.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is everything CI requires before merge.
func (CI) Gate() error {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum is not tidy; run go mod tidy and commit the result")
	}
	return nil
}

// Cross builds every release platform with cgo off.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/pystyle"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Compare times pystyle against pycodestyle on BENCH_DIR (default "."),
// averaged over BENCH_RUNS runs (default 3).
func (Bench) Compare() error {
	st.Deps(Build)
	if err := requirePycodestyle(); err != nil {
		return err
	}

	runs, err := strconv.Atoi(cmp.Or(os.Getenv("BENCH_RUNS"), "3"))
	if err != nil || runs < 1 {
		return fmt.Errorf("BENCH_RUNS must be a positive integer, got %q", os.Getenv("BENCH_RUNS"))
	}
	dir := benchDir()

	for _, tool := range comparedTools(dir) {
		var total time.Duration
		for range runs {
			start := time.Now()
			// Both tools exit 1 when they find issues.
			_ = exec.Command(tool[0], tool[1:]...).Run() //nolint:gosec // fixed tool list
			total += time.Since(start)
		}
		fmt.Printf("  %-12s %v (avg of %d)\n", filepath.Base(tool[0]), total/time.Duration(runs), runs)
	}
	return nil
}

// Parity runs pystyle in the pep8 pack and pycodestyle on BENCH_DIR and
// prints the diagnostics only one of them reports.
func (Bench) Parity() error {
	st.Deps(Build)
	if err := requirePycodestyle(); err != nil {
		return err
	}

	dir := benchDir()
	ours := diagnosticLines(binary, "lint", "--no-cache", "--quiet", "--pack", "pep8", "--no-summary", dir)
	theirs := diagnosticLines("pycodestyle", dir)

	var onlyOurs, onlyTheirs []string
	for _, line := range ours {
		if !slices.Contains(theirs, line) {
			onlyOurs = append(onlyOurs, line)
		}
	}
	for _, line := range theirs {
		if !slices.Contains(ours, line) {
			onlyTheirs = append(onlyTheirs, line)
		}
	}

	fmt.Printf("pystyle only (%d):\n", len(onlyOurs))
	for _, line := range onlyOurs {
		fmt.Println("  " + line)
	}
	fmt.Printf("pycodestyle only (%d):\n", len(onlyTheirs))
	for _, line := range onlyTheirs {
		fmt.Println("  " + line)
	}
	return nil
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

func readModFiles() ([]byte, error) {
	var all []byte
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		all = append(all, data...)
	}
	return all, nil
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func benchDir() string {
	return cmp.Or(os.Getenv("BENCH_DIR"), ".")
}

func comparedTools(dir string) [][]string {
	return [][]string{
		{binary, "lint", "--no-cache", "--quiet", dir},
		{"pycodestyle", "--quiet", dir},
	}
}

// diagnosticLines runs a checker and keeps its "path:row:col: CODE" lines.
func diagnosticLines(name string, args ...string) []string {
	out, _ := exec.Command(name, args...).Output() //nolint:gosec // fixed tool list
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Count(line, ":") >= 3 {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	slices.Sort(lines)
	return lines
}

func requirePycodestyle() error {
	if _, err := exec.LookPath("pycodestyle"); err != nil {
		return errors.New("pycodestyle not found; install it with pip install pycodestyle")
	}
	return nil
}

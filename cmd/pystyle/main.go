// Command pystyle checks Python source files for style issues.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/yaklabco/pystyle/internal/cli"
	"github.com/yaklabco/pystyle/internal/logging"
)

// Overridden with -ldflags "-X main.version=..." by release builds.
//
//nolint:gochecknoglobals // ldflags targets must be package variables.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand(buildInfo()).ExecuteContext(ctx)

	// Found issues were already reported on stdout.
	if err != nil && !errors.Is(err, cli.ErrIssuesFound) {
		logging.Default().Error("pystyle failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}

// buildInfo prefers ldflags values and falls back to what the Go
// toolchain recorded, so "go install" builds still report a version.
func buildInfo() cli.BuildInfo {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if version != "dev" {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
		case "vcs.time":
			info.Date = setting.Value
		}
	}
	return info
}

package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/yaklabco/pystyle/pkg/config"
)

// AppName names the configuration directories and files.
const AppName = "pystyle"

// PyProjectFile counts as a project config only when it has a
// [tool.pystyle] table.
const PyProjectFile = "pyproject.toml"

const dotEnvFile = ".env"

// ConfigPaths holds the config files found for one working directory.
// An empty field means no file was found for that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string // --config
	DotEnv   string
}

// Dedicated project files, most preferred first. They beat a
// pyproject.toml in the same directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{".pystyle.yml", ".pystyle.yaml", ".pystyle.toml"}

// File names accepted in the system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

// The upward project search ends at a directory holding one of these.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project config files and
// the .env file for workDir. The .env file is looked for beside the
// project config, or in workDir when there is none.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	envDir := workDir
	if project != "" {
		envDir = filepath.Dir(project)
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		User:    firstFile(userConfigDir(), layerConfigFiles),
		Project: project,
		DotEnv:  firstFile(envDir, []string{dotEnvFile}),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", AppName)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, AppName)
}

// userConfigDir follows XDG_CONFIG_HOME, defaulting to ~/.config.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks from startDir toward the filesystem root and
// returns the nearest project config. The walk gives up after the first
// VCS root or the home directory, so configs above a checkout never leak
// in. An empty startDir means the process working directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := projectConfigIn(dir); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func projectConfigIn(dir string) string {
	if path := firstFile(dir, projectConfigFiles); path != "" {
		return path
	}
	if path := filepath.Join(dir, PyProjectFile); config.HasPyProjectSection(path) {
		return path
	}
	return ""
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsTOMLConfig reports whether path should be decoded as TOML.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// IsYAMLConfig reports whether path should be decoded as YAML.
func IsYAMLConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

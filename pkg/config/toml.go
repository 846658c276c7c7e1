package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNoToolSection is returned when a pyproject.toml has no [tool.pystyle] table.
var ErrNoToolSection = errors.New("no [tool.pystyle] section")

// pyproject mirrors the parts of pyproject.toml that pystyle reads.
type pyproject struct {
	Tool struct {
		Pystyle Config `toml:"pystyle"`
	} `toml:"tool"`
}

// FromTOML parses a standalone TOML configuration (.pystyle.toml).
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}

// FromPyProject reads the [tool.pystyle] table of a pyproject.toml file.
// It returns ErrNoToolSection when the file exists but has no such table.
func FromPyProject(path string) (*Config, error) {
	var doc pyproject

	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if !meta.IsDefined("tool", "pystyle") {
		return nil, ErrNoToolSection
	}

	cfg := &doc.Tool.Pystyle
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}

// HasPyProjectSection reports whether path is a readable pyproject.toml
// carrying a [tool.pystyle] table.
func HasPyProjectSection(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	_, err := FromPyProject(path)

	return err == nil
}

// ToTOML serializes the configuration as a [tool.pystyle] table suitable
// for pasting into pyproject.toml.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var doc pyproject
	doc.Tool.Pystyle = *c

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}

	return buf.Bytes(), nil
}

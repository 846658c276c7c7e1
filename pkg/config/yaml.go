package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// FromYAML decodes a .pystyle.yml document. An empty document yields an
// empty Config rather than an error.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// ToYAML encodes the persisted settings. Command-line-only fields are
// tagged out and never appear.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy. Nested values inside rule Options are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	for _, flag := range []**bool{&out.Repeat, &out.Cache, &out.Templates} {
		*flag = clonePtr(*flag)
	}
	for _, list := range []*[]string{
		&out.Select, &out.IgnoreCodes, &out.Ignore, &out.Extensions,
		&out.EnableRules, &out.DisableRules,
	} {
		*list = slices.Clone(*list)
	}

	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = RuleConfig{
				Enabled:  clonePtr(rc.Enabled),
				Severity: clonePtr(rc.Severity),
				Options:  maps.Clone(rc.Options),
			}
		}
	}

	return &out
}

// Fingerprint identifies every setting that can change which diagnostics
// a file produces. Two configs with equal fingerprints check identically,
// so the result cache keys on it. Output settings are left out.
func (c *Config) Fingerprint() []byte {
	if c == nil {
		return nil
	}

	persisted := *c
	persisted.SummaryOrder = ""

	// --enable and --disable are tagged out of the persisted form but
	// change the rule set. yaml.v3 sorts map keys, so the bytes are stable.
	data, err := yaml.Marshal(struct {
		Settings *Config  `yaml:"settings"`
		Enable   []string `yaml:"enable"`
		Disable  []string `yaml:"disable"`
	}{
		Settings: &persisted,
		Enable:   slices.Sorted(slices.Values(c.EnableRules)),
		Disable:  slices.Sorted(slices.Values(c.DisableRules)),
	})
	if err != nil {
		return nil
	}
	return data
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"blank-lines": {
					Enabled:  config.Bool(true),
					Severity: &severity,
					Options:  map[string]any{"top_level": 2},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Rules, "blank-lines")
		assert.True(t, *clone.Rules["blank-lines"].Enabled)

		newSeverity := "warning"
		clone.Rules["blank-lines"] = config.RuleConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Rules["blank-lines"].Severity)
	})

	t.Run("deep copies slices and flags", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"build/**"}
		original.Repeat = config.Bool(true)

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		*clone.Repeat = false

		assert.Equal(t, "build/**", original.Ignore[0])
		assert.True(t, *original.Repeat)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.MaxLineLength = 100
	original.Select = []string{"E"}
	original.Repeat = config.Bool(false)

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_line_length: 100")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 100, parsed.MaxLineLength)
	assert.Equal(t, []string{"E"}, parsed.Select)
	assert.False(t, parsed.RepeatEnabled())
	assert.NotNil(t, parsed.Rules)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("max_line_length: [\n"))
	require.Error(t, err)
}

func TestFromYAML_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.MaxLineLength)
	assert.NotNil(t, cfg.Rules)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := config.NewConfig()
	b := config.NewConfig()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Format = config.FormatJSON
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "output format does not affect results")

	b.MaxLineLength = 120
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := config.NewConfig()
	c.DisableRules = []string{"blank-lines"}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestFromPyProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	withSection := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(withSection, []byte(`
[project]
name = "demo"

[tool.pystyle]
max_line_length = 99
ignore_codes = ["W505"]

[tool.pystyle.blank_lines]
top_level = 2

[tool.pystyle.rules.blank-lines]
enabled = false
`), 0o600))

	cfg, err := config.FromPyProject(withSection)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.MaxLineLength)
	assert.Equal(t, []string{"W505"}, cfg.IgnoreCodes)
	assert.Equal(t, 2, cfg.BlankLines.TopLevel)
	require.Contains(t, cfg.Rules, "blank-lines")
	assert.False(t, *cfg.Rules["blank-lines"].Enabled)
	assert.True(t, config.HasPyProjectSection(withSection))

	without := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(without, []byte("[project]\nname = \"demo\"\n"), 0o600))

	_, err = config.FromPyProject(without)
	require.ErrorIs(t, err, config.ErrNoToolSection)
	assert.False(t, config.HasPyProjectSection(without))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{ID: "blank-lines", Description: "Blank line spacing", Codes: []string{"E301", "E302"}, Enabled: true, Severity: config.SeverityError},
	}

	minimal, err := config.GenerateTemplate(config.TemplateOptions{Rules: rules})
	require.NoError(t, err)
	assert.Contains(t, string(minimal), "max_line_length: 80")

	parsed, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, 80, parsed.MaxLineLength)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Rules: rules})
	require.NoError(t, err)
	assert.Contains(t, string(full), "# Codes: E301, E302")
	assert.Contains(t, string(full), "  blank-lines:\n    enabled: true\n    severity: error\n")

	tomlOut, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML})
	require.NoError(t, err)
	assert.Contains(t, string(tomlOut), "[tool.pystyle]")
}

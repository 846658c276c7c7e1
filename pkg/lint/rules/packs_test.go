package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

func TestPacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"nedc", "pep8", "relaxed"}, rules.PackNames())

	for _, pack := range rules.Packs() {
		assert.NotEmpty(t, pack.Description, "pack %s", pack.Name)
		require.NotEmpty(t, pack.Rules, "pack %s", pack.Name)

		for id, rc := range pack.Rules {
			_, ok := rules.Catalog().GetByID(id)
			assert.True(t, ok, "pack %s names unknown rule %s", pack.Name, id)
			require.NotNil(t, rc.Enabled, "pack %s rule %s", pack.Name, id)

			if rc.Severity != nil {
				assert.True(t, config.Severity(*rc.Severity).IsValid(), "pack %s rule %s", pack.Name, id)
			}
		}
	}
}

func TestPackByName(t *testing.T) {
	t.Parallel()

	pack := rules.PackByName("pep8")
	require.NotNil(t, pack)
	assert.Equal(t, 79, pack.MaxLineLength)

	assert.Nil(t, rules.PackByName("nope"))
}

func TestPack_Apply(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	rules.PEP8Pack().Apply(cfg)

	assert.Equal(t, 79, cfg.MaxLineLength)
	assert.Equal(t, 72, cfg.MaxDocLength)
	assert.Equal(t, 2, cfg.BlankLines.TopLevel)
	require.Contains(t, cfg.Rules, "end-of-file-marker")
	assert.False(t, *cfg.Rules["end-of-file-marker"].Enabled)

	// The house pack keeps the defaults.
	cfg = config.NewConfig()
	rules.NEDCPack().Apply(cfg)
	assert.Equal(t, config.DefaultMaxLineLength, cfg.MaxLineLength)
	assert.Equal(t, config.DefaultTopLevelBlank, cfg.BlankLines.TopLevel)
}

func TestPEP8Pack_BlankLines(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	rules.PEP8Pack().Apply(cfg)
	cfg.Select = []string{"E3"}

	got := checkWith(t, cfg, "def a():\n    pass\n\ndef b():\n    pass\n")
	assert.Equal(t, []string{"4:1: E302 expected 2 blank lines, found 1"}, got)
}

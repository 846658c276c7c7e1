package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
)

func TestFromTOML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "settings",
			input: "max_line_length = 100\nend_marker = \"# eof\"\nrepeat = false\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 100, cfg.MaxLineLength)
				assert.Equal(t, "# eof", cfg.EndMarker)
				require.NotNil(t, cfg.Repeat)
				assert.False(t, cfg.RepeatEnabled())
				assert.NotNil(t, cfg.Rules)
			},
		},
		{
			name:  "rule table",
			input: "[rules.trailing-whitespace]\nseverity = \"warning\"\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				require.Contains(t, cfg.Rules, "trailing-whitespace")
				assert.Equal(t, "warning", *cfg.Rules["trailing-whitespace"].Severity)
			},
		},
		{
			name:    "malformed",
			input:   "max_line_length = = 3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.FromTOML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestToTOML_ReadBackAsPyProject(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.MaxLineLength = 72
	cfg.IgnoreCodes = []string{"E226"}

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	back, err := config.FromPyProject(path)
	require.NoError(t, err)
	assert.Equal(t, 72, back.MaxLineLength)
	assert.Equal(t, []string{"E226"}, back.IgnoreCodes)
	assert.Equal(t, cfg.BlankLines, back.BlankLines)
}

package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
)

func resolvedIDs(resolved []lint.ResolvedRule) []string {
	var ids []string
	for _, rr := range resolved {
		ids = append(ids, rr.Rule.ID())
	}
	return ids
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	registry := registryOf(
		newLogicalFunc("blank", []string{"E301", "E302"}, nil),
		newPhysicalFunc("length", []string{"E501"}, nil),
		newPhysicalFunc("marker", []string{"W391"}, nil),
		newPhysicalFunc("silent", nil, nil),
	)

	tests := []struct {
		name string
		cfg  func(cfg *config.Config)
		want []string
	}{
		{
			name: "defaults skip rules without codes",
			cfg:  func(*config.Config) {},
			want: []string{"blank", "length", "marker"},
		},
		{
			name: "disabled in config",
			cfg: func(cfg *config.Config) {
				cfg.Rules["length"] = config.RuleConfig{Enabled: config.Bool(false)}
			},
			want: []string{"blank", "marker"},
		},
		{
			name: "disabled from the command line",
			cfg: func(cfg *config.Config) {
				cfg.DisableRules = []string{"marker"}
			},
			want: []string{"blank", "length"},
		},
		{
			name: "command line beats the rules table",
			cfg: func(cfg *config.Config) {
				cfg.Rules["length"] = config.RuleConfig{Enabled: config.Bool(false)}
				cfg.Rules["marker"] = config.RuleConfig{Enabled: config.Bool(true)}
				cfg.EnableRules = []string{"length", "marker"}
				cfg.DisableRules = []string{"marker"}
			},
			want: []string{"blank", "length"},
		},
		{
			name: "select filters whole rules",
			cfg: func(cfg *config.Config) {
				cfg.Select = []string{"E3"}
			},
			want: []string{"blank"},
		},
		{
			name: "ignore filters whole rules",
			cfg: func(cfg *config.Config) {
				cfg.IgnoreCodes = []string{"W"}
			},
			want: []string{"blank", "length"},
		},
		{
			name: "a rule stays while one code is selected",
			cfg: func(cfg *config.Config) {
				cfg.IgnoreCodes = []string{"E301"}
			},
			want: []string{"blank", "length", "marker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.cfg(cfg)

			assert.Equal(t, tt.want, resolvedIDs(lint.ResolveRules(registry, cfg)))
		})
	}
}

func TestResolveRules_SeverityAndOptions(t *testing.T) {
	t.Parallel()

	registry := registryOf(newPhysicalFunc("length", []string{"E501"}, nil))

	sev := "warning"
	cfg := config.NewConfig()
	cfg.Rules["length"] = config.RuleConfig{
		Severity: &sev,
		Options:  map[string]any{"max_line_length": 120},
	}

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
	assert.Equal(t, 120, resolved[0].Options.Int("max_line_length", 80))
	assert.Equal(t, 80, resolved[0].Options.Int("missing", 80))
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	registry := registryOf(newPhysicalFunc("length", []string{"E501"}, nil))

	resolved := lint.ResolveRules(registry, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityError, resolved[0].Severity)
}

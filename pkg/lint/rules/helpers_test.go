package rules_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/fsutil"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

// ruleCase is one source snippet and the diagnostics expected for the
// selected code prefixes, formatted as "row:col: CODE message".
type ruleCase struct {
	name        string
	src         string
	selectCodes []string
	want        []string
}

// check runs every built-in rule over src, keeping only the selected codes.
func check(t *testing.T, src string, selectCodes ...string) []string {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Select = selectCodes

	return checkWith(t, cfg, src)
}

// checkWith runs every built-in rule over src under cfg.
func checkWith(t *testing.T, cfg *config.Config, src string) []string {
	t.Helper()

	engine := lint.NewEngine(rules.Catalog())
	result, err := engine.LintLines(context.Background(), "test.py", fsutil.SplitLines(src), cfg)
	require.NoError(t, err)
	require.NoError(t, result.TokenizeError)
	require.Empty(t, result.RuleErrors)

	var got []string
	for _, d := range result.Diagnostics {
		got = append(got, fmt.Sprintf("%d:%d: %s %s", d.Line, d.Column, d.Code, d.Message))
	}

	return got
}

func runCases(t *testing.T, cases []ruleCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, tc.src, tc.selectCodes...)
			require.Equal(t, tc.want, got)
		})
	}
}

package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/template"
)

const compliant = `#!/usr/bin/env python
#
# file: tools/hello.py
#
# revision history:
#
# 20240101 (AB): initial version
#
# prints a greeting
#------------------------------------------------------------------------------

# import system modules
#
import sys

# import nedc_modules
#
import nedc_file_tools

#------------------------------------------------------------------------------
#
# global variables are listed here
#
#------------------------------------------------------------------------------

GREETING = "hello"

#------------------------------------------------------------------------------
#
# functions are listed here
#
#------------------------------------------------------------------------------

# function: greet
#
# argument:
#   name: who to greet
#
# return: none
#
def greet(name):
    print(GREETING, name)

# function: main
#
def main(argv):
    greet(argv[0])
`

func ids(findings []template.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.ID)
	}
	return out
}

func TestCheck_Compliant(t *testing.T) {
	t.Parallel()

	assert.Empty(t, template.Check(compliant))
}

func TestCheck_EmptyFile(t *testing.T) {
	t.Parallel()

	got := ids(template.Check(""))
	assert.Equal(t, []string{
		"file-header",
		"system-imports",
		"local-imports",
		"global-variables",
		"functions-block",
		"main-function",
	}, got)
}

func TestCheck_MissingFunctionHeader(t *testing.T) {
	t.Parallel()

	text := compliant + "\ndef helper():\n    pass\n"
	assert.Equal(t, []string{"function-headers"}, ids(template.Check(text)))
}

func TestCheck_FindingCarriesGuidance(t *testing.T) {
	t.Parallel()

	findings := template.Check("x = 1\n")
	require.NotEmpty(t, findings)
	assert.Equal(t, "file-header", findings[0].ID)
	assert.Equal(t, template.FileHeaderGuidance, findings[0].Guidance)
}

func TestCountFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "none", text: "x = 1\n", want: 0},
		{name: "plain def", text: "def f():\n    pass\n", want: 1},
		{name: "async def", text: "async def f():\n    pass\n", want: 1},
		{name: "main excluded", text: "def main():\n    pass\n", want: 0},
		{name: "methods excluded", text: "class A:\n    def f(self):\n        pass\n", want: 0},
		{name: "mixed", text: "def a():\n    pass\ndef b():\n    pass\ndef main():\n    a()\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, template.CountFunctions(tt.text))
		})
	}
}

func TestRequirements_Order(t *testing.T) {
	t.Parallel()

	reqs := template.Requirements()
	require.Len(t, reqs, 7)
	assert.Equal(t, "file-header", reqs[0].ID)
	assert.Equal(t, "main-function", reqs[6].ID)
}

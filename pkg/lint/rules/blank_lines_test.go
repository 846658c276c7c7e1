package rules_test

import "testing"

func TestBlankLinesRule(t *testing.T) {
	t.Parallel()

	runCases(t, []ruleCase{
		{
			name:        "one blank line between functions",
			src:         "def a():\n    pass\n\ndef b():\n    pass\n",
			selectCodes: []string{"E3"},
		},
		{
			name:        "E302 no blank line between functions",
			src:         "def a():\n    pass\ndef b():\n    pass\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:1: E302 expected 1 blank lines, found 0"},
		},
		{
			name:        "E302 async def",
			src:         "def a():\n    pass\nasync def b():\n    pass\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:1: E302 expected 1 blank lines, found 0"},
		},
		{
			name:        "E303 too many blank lines",
			src:         "x = 1\n\n\ny = 2\n",
			selectCodes: []string{"E3"},
			want:        []string{"4:1: E303 too many blank lines (2)"},
		},
		{
			name:        "E303 inside function",
			src:         "def a():\n    x = 1\n\n\n    y = 2\n",
			selectCodes: []string{"E3"},
			want:        []string{"5:5: E303 too many blank lines (2)"},
		},
		{
			name:        "E304 blank line after decorator",
			src:         "@decorator\n\ndef a():\n    pass\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:1: E304 blank lines found after function decorator"},
		},
		{
			name:        "E305 code right after function",
			src:         "def a():\n    pass\na()\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:1: E305 expected 1 blank lines after class or function definition, found 0"},
		},
		{
			name:        "E301 method without blank line",
			src:         "class Foo:\n    b = 0\n    def bar():\n        pass\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:5: E301 expected 1 blank line, found 0"},
		},
		{
			name:        "E306 nested definition without blank line",
			src:         "def a():\n    x = 1\n    def b():\n        pass\n",
			selectCodes: []string{"E3"},
			want:        []string{"3:5: E306 expected 1 blank line before a nested definition, found 0"},
		},
		{
			name:        "method right after class line",
			src:         "class Foo:\n    def bar(self):\n        pass\n",
			selectCodes: []string{"E3"},
		},
		{
			name:        "method after docstring",
			src:         "class Foo:\n    \"\"\"Doc.\"\"\"\n    def bar(self):\n        pass\n",
			selectCodes: []string{"E3"},
		},
		{
			name:        "comment between functions counts blank lines before it",
			src:         "def a():\n    pass\n\n# comment\ndef b():\n    pass\n",
			selectCodes: []string{"E3"},
		},
		{
			name:        "names starting with def are not definitions",
			src:         "default = 1\nfoo = 1\n",
			selectCodes: []string{"E3"},
		},
	})
}

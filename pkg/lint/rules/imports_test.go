package rules_test

import "testing"

func TestModuleImportsOnTopRule(t *testing.T) {
	t.Parallel()

	runCases(t, []ruleCase{
		{
			name:        "import after code",
			src:         "a = 1\nimport os\n",
			selectCodes: []string{"E402"},
			want:        []string{"2:1: E402 module level import not at top of file"},
		},
		{
			name:        "second string is not a docstring",
			src:         "'one'\n'two'\nimport os\n",
			selectCodes: []string{"E402"},
			want:        []string{"3:1: E402 module level import not at top of file"},
		},
		{name: "docstring then import", src: "\"\"\"Module.\"\"\"\nimport os\n", selectCodes: []string{"E402"}},
		{
			name:        "guarded import",
			src:         "try:\n    import x\nexcept ImportError:\n    pass\nelse:\n    pass\nimport y\n",
			selectCodes: []string{"E402"},
		},
		{name: "dunder assignment", src: "__all__ = ['x']\nimport os\n", selectCodes: []string{"E402"}},
		{name: "conditional import", src: "if x:\n    import os\n", selectCodes: []string{"E402"}},
	})
}

func TestBareExceptRule(t *testing.T) {
	t.Parallel()

	runCases(t, []ruleCase{
		{
			name:        "bare except",
			src:         "try:\n    pass\nexcept:\n    pass\n",
			selectCodes: []string{"E722"},
			want:        []string{"3:1: E722 do not use bare 'except'"},
		},
		{name: "typed except", src: "try:\n    pass\nexcept Exception:\n    pass\n", selectCodes: []string{"E722"}},
	})
}

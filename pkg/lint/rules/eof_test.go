package rules_test

import "testing"

func TestEndOfFileMarkerRule(t *testing.T) {
	t.Parallel()

	runCases(t, []ruleCase{
		{
			name:        "missing marker",
			src:         "x = 1\n",
			selectCodes: []string{"W391", "W292"},
			want:        []string{"1:1: W391 missing '# end of file' at end of file"},
		},
		{name: "marker present", src: "x = 1\n# end of file\n", selectCodes: []string{"W391", "W292"}},
		{
			name:        "marker without newline",
			src:         "x = 1\n# end of file",
			selectCodes: []string{"W391", "W292"},
			want:        []string{"2:14: W292 no newline at end of file"},
		},
	})
}

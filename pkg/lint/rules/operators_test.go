package rules_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingWhitespaceAroundOperatorRule(t *testing.T) {
	t.Parallel()

	codes := []string{"E225", "E226", "E227", "E228"}

	runCases(t, []ruleCase{
		{
			name:        "E225 and E226 on compact assignment",
			src:         "i=i+1\n",
			selectCodes: codes,
			want: []string{
				"1:2: E225 missing whitespace around operator",
				"1:4: E226 missing whitespace around arithmetic operator",
			},
		},
		{
			name:        "E225 augmented assignment",
			src:         "submitted +=1\n",
			selectCodes: codes,
			want:        []string{"1:13: E225 missing whitespace around operator"},
		},
		{
			name:        "E225 power with one side spaced",
			src:         "z = x **y\n",
			selectCodes: codes,
			want:        []string{"1:9: E225 missing whitespace around operator"},
		},
		{
			name:        "E227 bitwise or",
			src:         "c = a|b\n",
			selectCodes: codes,
			want:        []string{"1:6: E227 missing whitespace around bitwise or shift operator"},
		},
		{
			name:        "E228 modulo",
			src:         "msg = fmt%(errno, errmsg)\n",
			selectCodes: codes,
			want:        []string{"1:10: E228 missing whitespace around modulo operator"},
		},
		{name: "keyword arguments and star args", src: "foo(bar, key='word', *args, **kwargs)\n", selectCodes: codes},
		{name: "unary minus", src: "x = -1\n", selectCodes: codes},
		{name: "slice with unary", src: "alpha[:-i]\n", selectCodes: codes},
		{name: "positional only marker", src: "def f(a, /, b):\n    pass\n", selectCodes: codes},
		{name: "spaced operators", src: "i = i + 1\n", selectCodes: codes},
	})
}

// TestOperatorSpacingPolicy pins the spacing policy of every operator class
// against the three asymmetric layouts of "x = a<op>b".
func TestOperatorSpacingPolicy(t *testing.T) {
	t.Parallel()

	codes := []string{"E225", "E226", "E227", "E228"}

	// want is the diagnostic for the compact layout; "" means accepted.
	policies := []struct {
		op   string
		want string
	}{
		{"==", "E225 missing whitespace around operator"},
		{"!=", "E225 missing whitespace around operator"},
		{"<", "E225 missing whitespace around operator"},
		{">", "E225 missing whitespace around operator"},
		{"<=", "E225 missing whitespace around operator"},
		{">=", "E225 missing whitespace around operator"},
		{"+", "E226 missing whitespace around arithmetic operator"},
		{"-", "E226 missing whitespace around arithmetic operator"},
		{"*", "E226 missing whitespace around arithmetic operator"},
		{"/", "E226 missing whitespace around arithmetic operator"},
		{"//", "E226 missing whitespace around arithmetic operator"},
		{"@", "E226 missing whitespace around arithmetic operator"},
		{"**", ""},
		{"|", "E227 missing whitespace around bitwise or shift operator"},
		{"&", "E227 missing whitespace around bitwise or shift operator"},
		{"^", "E227 missing whitespace around bitwise or shift operator"},
		{"<<", "E227 missing whitespace around bitwise or shift operator"},
		{">>", "E227 missing whitespace around bitwise or shift operator"},
		{"%", "E228 missing whitespace around modulo operator"},
	}

	const unbalanced = "E225 missing whitespace around operator"

	for _, p := range policies {
		t.Run(p.op, func(t *testing.T) {
			t.Parallel()

			var compact []string
			if p.want != "" {
				compact = []string{"1:6: " + p.want}
			}
			assert.Equal(t, compact, check(t, fmt.Sprintf("x = a%sb\n", p.op), codes...), "compact")

			assert.Empty(t, check(t, fmt.Sprintf("x = a %s b\n", p.op), codes...), "spaced")

			// Space before only: reported where the operand starts.
			assert.Equal(t, []string{fmt.Sprintf("1:%d: %s", 7+len(p.op), unbalanced)},
				check(t, fmt.Sprintf("x = a %sb\n", p.op), codes...), "space before")

			// Space after only: reported at the operator.
			assert.Equal(t, []string{"1:6: " + unbalanced},
				check(t, fmt.Sprintf("x = a%s b\n", p.op), codes...), "space after")
		})
	}
}

func TestOperatorSpacingPolicy_Statements(t *testing.T) {
	t.Parallel()

	codes := []string{"E225", "E226", "E227", "E228"}

	runCases(t, []ruleCase{
		{name: "assignment", src: "x=1\n", selectCodes: codes, want: []string{"1:2: E225 missing whitespace around operator"}},
		{name: "augmented", src: "x%=1\n", selectCodes: codes, want: []string{"1:2: E225 missing whitespace around operator"}},
		{
			name:        "annotation arrow",
			src:         "def f()->int:\n    pass\n",
			selectCodes: codes,
			want:        []string{"1:8: E225 missing whitespace around operator"},
		},
		{name: "keyword default", src: "f(a=1)\n", selectCodes: codes},
		{name: "lambda default", src: "f = lambda a=1: a\n", selectCodes: codes},
		{name: "unary after keyword", src: "return -x\n", selectCodes: codes},
		{name: "unpacking after comma", src: "f(a, *b)\n", selectCodes: codes},
	})
}

func TestWhitespaceBeforeParametersRule(t *testing.T) {
	t.Parallel()

	runCases(t, []ruleCase{
		{
			name:        "space before call paren",
			src:         "spam (1)\n",
			selectCodes: []string{"E211"},
			want:        []string{"1:5: E211 whitespace before '('"},
		},
		{
			name:        "space before subscript",
			src:         "dict ['key'] = 1\n",
			selectCodes: []string{"E211"},
			want:        []string{"1:5: E211 whitespace before '['"},
		},
		{name: "class bases", src: "class A (B):\n    pass\n", selectCodes: []string{"E211"}},
		{name: "keyword before paren", src: "if (a):\n    pass\n", selectCodes: []string{"E211"}},
		{name: "soft keyword before paren", src: "match (a):\n    case 1:\n        pass\n", selectCodes: []string{"E211"}},
		{
			name:        "type called with a space",
			src:         "t = type (value)\n",
			selectCodes: []string{"E211"},
			want:        []string{"1:9: E211 whitespace before '('"},
		},
		{name: "no space", src: "spam(1)\n", selectCodes: []string{"E211"}},
	})
}

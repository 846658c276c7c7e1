package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/pystyle/pkg/lint"
)

var dunderRe = regexp.MustCompile(`^__([^\s]+)__(?::\s*[a-zA-Z.0-9_\[\]"]+)? = `)

// Keywords that may appear among the imports at the top of a module.
var importBlockKeywords = []string{"try", "except", "else", "finally", "with", "if", "elif"}

// State keys used by ModuleImportsOnTopRule.
const (
	stateSeenNonImports = "seen_non_imports"
	stateSeenDocstring  = "seen_docstring"
)

// ModuleImportsOnTopRule requires module level imports to precede other code.
type ModuleImportsOnTopRule struct {
	lint.BaseRule
}

// NewModuleImportsOnTopRule creates a new import placement rule.
func NewModuleImportsOnTopRule() *ModuleImportsOnTopRule {
	return &ModuleImportsOnTopRule{
		BaseRule: lint.NewBaseRule(
			"module-imports-on-top-of-file",
			"Place module level imports at the top of the file, after comments and the docstring",
			lint.KindLogical,
			[]string{"E402"},
			[]string{"imports"},
		),
	}
}

// CheckLogical tracks whether code other than imports has been seen in the
// file and reports imports that follow it.
func (r *ModuleImportsOnTopRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	// Imports inside blocks and functions are allowed.
	if line.IndentLevel > 0 || line.Text == "" {
		return nil
	}

	text := line.Text
	state := line.State

	switch {
	case strings.HasPrefix(text, "import ") || strings.HasPrefix(text, "from "):
		if seen, _ := state[stateSeenNonImports].(bool); seen {
			return []lint.Problem{lint.At(0, "E402", "module level import not at top of file")}
		}

	case dunderRe.MatchString(text):
		// Module dunders such as __all__ and __version__.

	case hasAnyPrefix(text, importBlockKeywords):
		// Conditional imports.

	case isStringLiteral(text):
		// The first string literal is the docstring.
		if seen, _ := state[stateSeenDocstring].(bool); seen {
			state[stateSeenNonImports] = true
		} else {
			state[stateSeenDocstring] = true
		}

	default:
		state[stateSeenNonImports] = true
	}

	return nil
}

func isStringLiteral(text string) bool {
	if text != "" && strings.IndexByte("uUbB", text[0]) >= 0 {
		text = text[1:]
	}
	if text != "" && (text[0] == 'r' || text[0] == 'R') {
		text = text[1:]
	}
	return text != "" && (text[0] == '"' || text[0] == '\'')
}

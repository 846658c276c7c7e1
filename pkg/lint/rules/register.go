package rules

import (
	"fmt"
	"sync"

	"github.com/yaklabco/pystyle/pkg/lint"
)

// All returns a fresh instance of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		// Blank lines and layout
		NewBlankLinesRule(),      // E301-E306
		NewEndOfFileMarkerRule(), // W391, W292
		NewMaxLineLengthRule(),   // E501
		NewMaxDocLengthRule(),    // W505
		NewIndentationRule(),     // E111-E117

		// Whitespace
		NewExtraneousWhitespaceRule(),                // E201-E203
		NewWhitespaceBeforeParametersRule(),          // E211
		NewWhitespaceAroundOperatorRule(),            // E221-E224
		NewMissingWhitespaceAroundOperatorRule(),     // E225-E228
		NewMissingWhitespaceRule(),                   // E231
		NewWhitespaceAroundCommaRule(),               // E241, E242
		NewWhitespaceAroundKeywordsRule(),            // E271-E274
		NewMissingWhitespaceAfterImportKeywordRule(), // E275

		// Comments
		NewWhitespaceBeforeCommentRule(), // E261, E262, E265, E266

		// Imports
		NewImportsOnSeparateLinesRule(), // E401
		NewModuleImportsOnTopRule(),     // E402

		// Statements
		NewBareExceptRule(), // E722
	}
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) error {
	for _, rule := range All() {
		if err := registry.Register(rule); err != nil {
			return fmt.Errorf("register built-in rules: %w", err)
		}
	}
	return nil
}

// Catalog returns the sealed registry of built-in rules. It is built once
// and shared; callers must not register into it.
var Catalog = sync.OnceValue(func() *lint.Registry {
	registry := lint.NewRegistry()
	if err := RegisterAll(registry); err != nil {
		panic(err)
	}
	registry.Seal()
	return registry
})

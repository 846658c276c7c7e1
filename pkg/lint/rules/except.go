package rules

import (
	"regexp"

	"github.com/yaklabco/pystyle/pkg/lint"
)

var bareExceptRe = regexp.MustCompile(`^except\s*:`)

// BareExceptRule flags except clauses without an exception type.
type BareExceptRule struct {
	lint.BaseRule
}

// NewBareExceptRule creates a new bare except rule.
func NewBareExceptRule() *BareExceptRule {
	return &BareExceptRule{
		BaseRule: lint.NewBaseRule(
			"bare-except",
			"Name the exceptions an except clause catches",
			lint.KindLogical,
			[]string{"E722"},
			[]string{"exceptions"},
		),
	}
}

// CheckLogical matches a bare except at the start of the statement.
func (r *BareExceptRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	if !bareExceptRe.MatchString(line.Text) {
		return nil
	}

	return []lint.Problem{lint.At(0, "E722", "do not use bare 'except'")}
}

// Package lint provides the check engine, diagnostics, and rule registry for pystyle.
package lint

import (
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// Kind tells the dispatcher which view of the source a rule inspects.
type Kind int

const (
	// KindPhysical rules run once per raw source line.
	KindPhysical Kind = iota
	// KindLogical rules run once per reconstructed logical line.
	KindLogical
)

func (k Kind) String() string {
	if k == KindPhysical {
		return "physical"
	}

	return "logical"
}

// Diagnostic represents a single style violation found in a file.
type Diagnostic struct {
	// Code is the stable violation code (e.g., "E302").
	Code string

	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Line is the 1-based line number of the issue.
	Line int

	// Column is the 1-based character column of the issue.
	Column int
}

// Problem is what a rule reports: a position plus code and message. The
// checker turns problems into Diagnostics.
type Problem struct {
	// Offset is a position within the logical line text. Ignored when
	// Absolute is set.
	Offset int

	// Pos is an absolute source position (byte column).
	Pos pytoken.Position

	// Absolute marks Pos as authoritative.
	Absolute bool

	Code    string
	Message string
}

// At returns a Problem at a logical-line offset. For physical rules the
// offset is the byte column within the physical line.
func At(offset int, code, message string) Problem {
	return Problem{Offset: offset, Code: code, Message: message}
}

// AtPos returns a Problem at an absolute row and byte column.
func AtPos(pos pytoken.Position, code, message string) Problem {
	return Problem{Pos: pos, Absolute: true, Code: code, Message: message}
}

// Rule defines the metadata every check exposes. A rule must additionally
// implement PhysicalRule or LogicalRule, matching its Kind.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "blank-lines").
	ID() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Kind returns whether the rule inspects physical or logical lines.
	Kind() Kind

	// Codes lists the diagnostic codes the rule may emit. A rule with no
	// codes is never dispatched.
	Codes() []string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["whitespace"]).
	Tags() []string
}

// PhysicalRule inspects one raw source line.
type PhysicalRule interface {
	Rule
	CheckPhysical(line *PhysicalLine) []Problem
}

// LogicalRule inspects one logical line together with its history.
type LogicalRule interface {
	Rule
	CheckLogical(line *LogicalLine) []Problem
}

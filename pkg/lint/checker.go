package lint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// InternalErrorCode marks a diagnostic produced when a rule panics.
const InternalErrorCode = "E902"

// ErrRuleFailed wraps a panic recovered from a rule.
var ErrRuleFailed = errors.New("rule failed")

type physicalEntry struct {
	rule     PhysicalRule
	severity config.Severity
	options  RuleOptions
}

type logicalEntry struct {
	rule     LogicalRule
	severity config.Severity
	options  RuleOptions
}

// Checker runs the rules over one file. It owns all per-file state and must
// not be shared between files.
type Checker struct {
	lines    []string
	settings Settings
	report   *Report
	selected func(code string) bool

	physical []physicalEntry
	logical  []logicalEntry

	lineNumber                int
	totalLines                int
	indentChar                rune
	indentLevel               int
	previousIndentLevel       int
	previousLogical           string
	previousUnindentedLogical string
	tokens                    []pytoken.Token
	blankLines                int
	blankBefore               int
	multiline                 bool
	states                    map[string]map[string]any

	ruleErrors map[string]error
}

// NewChecker prepares a check of lines using the resolved rules. Rules that
// implement neither PhysicalRule nor LogicalRule for their Kind are ignored.
func NewChecker(lines []string, rules []ResolvedRule, settings Settings, report *Report) *Checker {
	c := &Checker{
		lines:    lines,
		settings: settings,
		report:   report,
		selected: func(string) bool { return true },
	}

	for _, rr := range rules {
		switch rr.Rule.Kind() {
		case KindPhysical:
			if rule, ok := rr.Rule.(PhysicalRule); ok {
				c.physical = append(c.physical, physicalEntry{rule: rule, severity: rr.Severity, options: rr.Options})
			}
		case KindLogical:
			if rule, ok := rr.Rule.(LogicalRule); ok {
				c.logical = append(c.logical, logicalEntry{rule: rule, severity: rr.Severity, options: rr.Options})
			}
		}
	}

	return c
}

// SetCodeFilter restricts which codes reach the report.
func (c *Checker) SetCodeFilter(selected func(code string) bool) {
	if selected != nil {
		c.selected = selected
	}
}

// RuleErrors returns the failures recovered from rules, keyed by rule ID.
func (c *Checker) RuleErrors() map[string]error {
	return c.ruleErrors
}

func (c *Checker) reset() {
	c.totalLines = len(c.lines)
	c.lineNumber = 0
	c.indentChar = 0
	c.indentLevel = 0
	c.previousIndentLevel = 0
	c.previousLogical = ""
	c.previousUnindentedLogical = ""
	c.tokens = nil
	c.blankLines = 0
	c.blankBefore = 0
	c.multiline = false
	c.states = make(map[string]map[string]any)
	c.ruleErrors = make(map[string]error)
}

// Run checks the whole file. A tokenizer fault stops the check early and is
// returned; problems found before the fault remain in the report.
func (c *Checker) Run() error {
	c.reset()

	var (
		tokErr       error
		parens       int
		prevPhysical string
	)

	for tok, err := range pytoken.New(c.readline).All() {
		if err != nil {
			tokErr = err

			break
		}

		if tok.Start.Row > c.totalLines {
			break
		}

		c.maybeCheckPhysical(tok, prevPhysical)
		prevPhysical = tok.Line
		c.tokens = append(c.tokens, tok)

		if tok.Kind == pytoken.Op {
			switch tok.Text {
			case "(", "[", "{":
				parens++
			case ")", "]", "}":
				parens--
			}

			continue
		}

		if parens != 0 || !tok.Kind.IsNewline() {
			continue
		}

		switch {
		case tok.Kind == pytoken.Newline:
			c.checkLogical()
			c.blankBefore = 0
		case len(c.tokens) == 1:
			// The physical line holds only this token.
			c.blankLines++
			c.tokens = c.tokens[:0]
		default:
			c.checkLogical()
		}
	}

	if len(c.tokens) > 0 && c.totalLines > 0 {
		c.checkPhysical(c.lines[c.totalLines-1])
		c.checkLogical()
	}

	return tokErr
}

func (c *Checker) readline() string {
	if c.lineNumber >= c.totalLines {
		return ""
	}

	line := c.lines[c.lineNumber]
	c.lineNumber++

	if c.indentChar == 0 && line != "" {
		if r, _ := utf8.DecodeRuneInString(line); IsIndentWhitespace(r) {
			c.indentChar = r
		}
	}

	return line
}

// isEOLToken reports whether tok ends a physical line: a newline token, or
// the last token before a backslash continuation.
func isEOLToken(tok pytoken.Token) bool {
	if tok.Kind.IsNewline() {
		return true
	}

	if tok.End.Col > len(tok.Line) {
		return false
	}

	return strings.TrimLeftFunc(tok.Line[tok.End.Col:], unicode.IsSpace) == "\\\n"
}

func (c *Checker) maybeCheckPhysical(tok pytoken.Token, prevPhysical string) {
	if isEOLToken(tok) {
		// The implicit NEWLINE at end of input carries no line text.
		if tok.Line == "" {
			c.checkPhysical(prevPhysical)
		} else {
			c.checkPhysical(tok.Line)
		}

		return
	}

	if tok.Kind != pytoken.String || !strings.Contains(tok.Text, "\n") {
		return
	}

	// Replay every line of a multi-line string except the last, whose
	// newline lies outside the string and is checked normally.
	c.multiline = true
	c.lineNumber = tok.Start.Row

	first := c.lines[c.lineNumber-1]
	src := first[:min(tok.Start.Col, len(first))] + tok.Text
	parts := strings.Split(src, "\n")

	for _, part := range parts[:len(parts)-1] {
		c.checkPhysical(part + "\n")
		c.lineNumber++
	}

	c.multiline = false
}

func (c *Checker) checkPhysical(line string) {
	view := &PhysicalLine{
		Line:       line,
		LineNumber: c.lineNumber,
		TotalLines: c.totalLines,
		Lines:      c.lines,
		Multiline:  c.multiline,
		Settings:   c.settings,
	}

	for _, entry := range c.physical {
		view.Options = entry.options

		fallback := pytoken.Position{Row: c.lineNumber}
		for _, p := range c.runPhysical(entry, view, fallback) {
			pos := pytoken.Position{Row: c.lineNumber, Col: p.Offset}
			if p.Absolute {
				pos = p.Pos
			}

			c.add(pos, p, entry.rule.ID(), entry.severity)
		}
	}
}

func (c *Checker) checkLogical() {
	text, mapping, _ := BuildLogicalLine(c.tokens, c.lines)
	if mapping == nil {
		return
	}

	start := mapping.Start()
	startLine := ""
	if start.Row >= 1 && start.Row <= len(c.lines) {
		startLine = c.lines[start.Row-1]
	}

	c.indentLevel = pytoken.ExpandIndent(startLine[:min(start.Col, len(startLine))])
	c.blankBefore = max(c.blankBefore, c.blankLines)

	view := &LogicalLine{
		Text:                      text,
		Tokens:                    c.tokens,
		Mapping:                   mapping,
		Lines:                     c.lines,
		LineNumber:                c.lineNumber,
		IndentChar:                byte(c.indentChar),
		IndentLevel:               c.indentLevel,
		PreviousIndentLevel:       c.previousIndentLevel,
		BlankLines:                c.blankLines,
		BlankBefore:               c.blankBefore,
		PreviousLogical:           c.previousLogical,
		PreviousUnindentedLogical: c.previousUnindentedLogical,
		Settings:                  c.settings,
	}

	for _, entry := range c.logical {
		view.State = c.state(entry.rule.ID())
		view.Options = entry.options

		for _, p := range c.runLogical(entry, view, start) {
			pos := p.Pos
			if !p.Absolute {
				pos = mapping.Translate(p.Offset)
			}

			c.add(pos, p, entry.rule.ID(), entry.severity)
		}
	}

	if text != "" {
		c.previousIndentLevel = c.indentLevel
		c.previousLogical = text
		if c.indentLevel == 0 {
			c.previousUnindentedLogical = text
		}
	}

	c.blankLines = 0
	c.tokens = nil
}

func (c *Checker) state(ruleID string) map[string]any {
	st, ok := c.states[ruleID]
	if !ok {
		st = make(map[string]any)
		c.states[ruleID] = st
	}

	return st
}

func (c *Checker) add(pos pytoken.Position, p Problem, ruleID string, severity config.Severity) {
	if !c.selected(p.Code) {
		return
	}

	c.report.Add(pos, p.Code, p.Message, ruleID, severity)
}

func (c *Checker) runPhysical(entry physicalEntry, view *PhysicalLine, fallback pytoken.Position) (problems []Problem) {
	defer func() {
		if r := recover(); r != nil {
			problems = c.recovered(entry.rule.ID(), r, fallback)
		}
	}()

	return entry.rule.CheckPhysical(view)
}

func (c *Checker) runLogical(entry logicalEntry, view *LogicalLine, fallback pytoken.Position) (problems []Problem) {
	defer func() {
		if r := recover(); r != nil {
			problems = c.recovered(entry.rule.ID(), r, fallback)
		}
	}()

	return entry.rule.CheckLogical(view)
}

// recovered records a rule panic and turns it into an internal-error problem.
func (c *Checker) recovered(ruleID string, r any, pos pytoken.Position) []Problem {
	err := fmt.Errorf("%s: %w: %v", ruleID, ErrRuleFailed, r)
	if _, seen := c.ruleErrors[ruleID]; !seen {
		c.ruleErrors[ruleID] = err
	}

	return []Problem{AtPos(pos, InternalErrorCode, fmt.Sprintf("internal error in rule %s: %v", ruleID, r))}
}

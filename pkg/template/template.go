// Package template checks that a Python file follows the house layout:
// a file header, labeled import blocks, a global variables block, a
// functions block, and a header comment above every function.
//
// Template checks look at the whole file text at once and are independent
// of the token based rules in package lint.
package template

import (
	"regexp"
	"strings"
)

// Finding reports one missing template element.
type Finding struct {
	// ID identifies the requirement (e.g., "file-header").
	ID string

	// Message is a one-line description of what is missing.
	Message string

	// Guidance is the snippet the file should contain.
	Guidance string
}

// Requirement is one template element a file must contain.
type Requirement struct {
	ID       string
	Message  string
	Guidance string

	missing func(text string) bool
}

// Missing reports whether text lacks the element.
func (r Requirement) Missing(text string) bool {
	return r.missing(text)
}

// Guidance snippets.
const (
	FileHeaderGuidance = `#!/usr/bin/env python
#
# file: path/to/script/~.py
#
# revision history:
#
# yyyymmdd ([initial firstname][initial lastname]): initial version
#
# [description]
#------------------------------------------------------------------------------
`
	GlobalVariablesGuidance = `#------------------------------------------------------------------------------
#
# global variables are listed here
#
#------------------------------------------------------------------------------
`
	FunctionsGuidance = `#------------------------------------------------------------------------------
#
# functions are listed here
#
#------------------------------------------------------------------------------
`
	FunctionHeaderGuidance = `# function: [name]
#
# argument:
#   arg 1: [type + description]
#   .....
#   arg n:
#
# return: [type + description]
#
# [short description of the function]
#
`
	SystemImportsGuidance = `# import system modules
#
`
	LocalImportsGuidance = `# import nedc_modules
#
`
	MainFunctionGuidance = `# function: main
#
`
)

var (
	fileHeaderRe = regexp.MustCompile(`(?m)\A#!/usr/bin/env python\n#\n# file:.*\.py$\n#\n# revision history:\n#\n` +
		`# [0-9]{8} \([A-Z]{2}\): .*\n[\s\S]*?\n#-+\n$`)
	systemImportsRe   = regexp.MustCompile(`# import system modules\n#\nimport`)
	localImportsRe    = regexp.MustCompile(`# import nedc_modules\n#\nimport nedc`)
	globalVariablesRe = regexp.MustCompile(`#-*\n# *\n# global variables are listed here *\n# *\n#-*`)
	functionsRe       = regexp.MustCompile(`#-*\n# *\n# functions are listed here *\n# *\n#-*`)
	functionHeaderRe  = regexp.MustCompile(`# function:.*\n#\n# argument:\n[\s\S]*?def`)
	mainFunctionRe    = regexp.MustCompile(`# function: main\n#`)
)

var requirements = []Requirement{
	{
		ID:       "file-header",
		Message:  "At the top of your script please make sure to have:",
		Guidance: FileHeaderGuidance,
		missing:  func(text string) bool { return !fileHeaderRe.MatchString(text) },
	},
	{
		ID:       "system-imports",
		Message:  "At the top of your import please add:",
		Guidance: SystemImportsGuidance,
		missing:  func(text string) bool { return !systemImportsRe.MatchString(text) },
	},
	{
		ID:       "local-imports",
		Message:  "At the top of your NEDC modules import please add:",
		Guidance: LocalImportsGuidance,
		missing:  func(text string) bool { return !localImportsRe.MatchString(text) },
	},
	{
		ID:       "global-variables",
		Message:  "Please include and put your global variable under:",
		Guidance: GlobalVariablesGuidance,
		missing:  func(text string) bool { return !globalVariablesRe.MatchString(text) },
	},
	{
		ID:       "functions-block",
		Message:  "Please include and put your function(s) under:",
		Guidance: FunctionsGuidance,
		missing:  func(text string) bool { return !functionsRe.MatchString(text) },
	},
	{
		ID:       "function-headers",
		Message:  "Please define the top of each function with this format:",
		Guidance: FunctionHeaderGuidance,
		missing: func(text string) bool {
			return CountFunctions(text) != len(functionHeaderRe.FindAllStringIndex(text, -1))
		},
	},
	{
		ID:       "main-function",
		Message:  "At the top of your main function please add",
		Guidance: MainFunctionGuidance,
		missing:  func(text string) bool { return !mainFunctionRe.MatchString(text) },
	},
}

// Requirements returns the template elements in the order they are checked.
func Requirements() []Requirement {
	out := make([]Requirement, len(requirements))
	copy(out, requirements)
	return out
}

// Check returns a finding for every requirement text does not meet.
func Check(text string) []Finding {
	var findings []Finding
	for _, req := range requirements {
		if req.Missing(text) {
			findings = append(findings, Finding{ID: req.ID, Message: req.Message, Guidance: req.Guidance})
		}
	}
	return findings
}

// CountFunctions counts unindented lines that start a function definition
// other than main.
func CountFunctions(text string) int {
	count := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")

		var rest string
		switch {
		case strings.HasPrefix(line, "async def"):
			rest = line[len("async def"):]
		case strings.HasPrefix(line, "def"):
			rest = line[len("def"):]
		default:
			continue
		}

		if !strings.Contains(rest, "main") {
			count++
		}
	}
	return count
}

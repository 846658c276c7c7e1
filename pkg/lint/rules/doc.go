// Package rules provides the built-in style rules for pystyle.
//
// # Rule Kinds
//
// Physical rules see one raw source line at a time:
//
//   - maximum-line-length (E501): line too long
//   - end-of-file-marker (W391, W292): end marker comment and final newline
//
// Logical rules see one statement, rebuilt from its tokens with string
// contents muted and comments removed:
//
//   - blank-lines (E301-E306): blank lines between definitions
//   - indentation (E111-E117): indent depth and unexpected indents, off by default
//   - extraneous-whitespace (E201-E203): whitespace inside brackets, before separators
//   - whitespace-before-parameters (E211): whitespace before a call or index bracket
//   - whitespace-around-operator (E221-E224): tabs and runs of spaces around operators
//   - missing-whitespace-around-operator (E225-E228): operators without spaces
//   - missing-whitespace (E231): separators without a following space
//   - whitespace-around-comma (E241, E242): tabs and runs of spaces after separators
//   - whitespace-around-keywords (E271-E274): tabs and runs of spaces around keywords
//   - missing-whitespace-after-import-keyword (E275): "import(" in a from-import
//   - whitespace-before-comment (E261, E262, E265, E266): comment spacing and prefix
//   - imports-on-separate-lines (E401): several modules in one import
//   - module-imports-on-top-of-file (E402): imports after other code
//   - maximum-doc-length (W505): comment and docstring lines too long
//   - bare-except (E722): except clause without an exception type
//
// # Rule IDs and Codes
//
// Rules are identified by a kebab-case ID. Each rule declares the
// diagnostic codes it may emit; codes keep the familiar pycodestyle
// numbering so existing select and ignore lists carry over.
//
// # Rule Packs
//
// Packs are configuration presets for common style guides:
//
//   - nedc: the house style (80 columns, one blank line, end marker)
//   - pep8: PEP 8 layout (79 columns, two blank lines, no end marker, indentation checks)
//   - relaxed: minimal noise for legacy code
//
// # Registration
//
// Catalog returns the sealed registry of built-in rules. It is built on
// first use and never modified afterwards.
package rules

package parser

import "fmt"

// DiagnosticKind separates scanner failures from grammar failures.
type DiagnosticKind string

const (
	DiagLex    DiagnosticKind = "lex"
	DiagNumber DiagnosticKind = "number"
	DiagSyntax DiagnosticKind = "syntax"
)

// Diagnostic describes a lexical or syntax error. Emitting one never stops the
// scan or the parse.
type Diagnostic struct {
	Kind     DiagnosticKind
	Line     int
	Found    string
	Expected string
	AtEOF    bool
}

func (d *Diagnostic) Error() string {
	switch d.Kind {
	case DiagLex:
		return fmt.Sprintf("Line %d: Illegal character '%s'", d.Line, d.Found)
	case DiagNumber:
		return fmt.Sprintf("Line %d: Number '%s' out of range", d.Line, d.Found)
	default:
		if d.AtEOF {
			return fmt.Sprintf("Line %d: Syntax error: unexpected end of input, expected %s", d.Line, d.Expected)
		}
		return fmt.Sprintf("Line %d: Syntax error at %s, expected %s", d.Line, d.Found, d.Expected)
	}
}

// IsIncomplete reports whether the diagnostics only complain about input ending
// too early, which means more text could still complete the program.
func IsIncomplete(diags []Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		if d.Kind != DiagSyntax || !d.AtEOF {
			return false
		}
	}
	return true
}

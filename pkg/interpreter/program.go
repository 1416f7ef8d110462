package interpreter

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/parser"
	"mlang/interpreter-go/pkg/runtime"
	"mlang/interpreter-go/pkg/typechecker"
)

// ProgramOptions controls the parse, check and evaluate pipeline.
type ProgramOptions struct {
	SkipTypecheck bool
	// AllowDiagnostics evaluates the program even when parsing or checking
	// reported problems. ErrorNode placeholders evaluate as no-ops.
	AllowDiagnostics bool
}

// ProgramResult collects what each stage produced.
type ProgramResult struct {
	Program     *ast.Block
	Value       runtime.Value
	Syntax      []parser.Diagnostic
	Diagnostics []typechecker.Diagnostic
	Evaluated   bool
}

// HasDiagnostics reports whether parsing or checking found problems.
func (r ProgramResult) HasDiagnostics() bool {
	return len(r.Syntax) > 0 || len(r.Diagnostics) > 0
}

// Typecheck runs the interpreter's checker over program. Bindings made at top
// level stay visible to later calls.
func (i *Interpreter) Typecheck(program *ast.Block) ([]typechecker.Diagnostic, error) {
	diags, err := i.checker.CheckProgram(program)
	if err != nil {
		return nil, fmt.Errorf("interpreter: typecheck: %w", err)
	}
	return diags, nil
}

// EvaluateSource parses, checks and evaluates source. Diagnostics stop the
// pipeline before evaluation unless opts.AllowDiagnostics is set. A stopped
// pipeline returns a nil error with Evaluated false.
func (i *Interpreter) EvaluateSource(source []byte, opts ProgramOptions) (ProgramResult, error) {
	program, syntax := parser.ParseProgram(source)
	result := ProgramResult{Program: program, Syntax: syntax}

	if !opts.SkipTypecheck && (len(syntax) == 0 || opts.AllowDiagnostics) {
		diags, err := i.Typecheck(program)
		if err != nil {
			return result, err
		}
		result.Diagnostics = diags
	}
	if result.HasDiagnostics() && !opts.AllowDiagnostics {
		return result, nil
	}

	value, err := i.EvaluateProgram(program)
	result.Evaluated = true
	result.Value = value
	return result, err
}

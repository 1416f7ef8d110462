package interpreter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
	"mlang/interpreter-go/pkg/typechecker"
)

// ScopeMode selects how runtime bindings are scoped.
type ScopeMode string

const (
	// ScopeFlat keeps every binding in the global environment; loop variables
	// and variables assigned inside blocks survive the construct.
	ScopeFlat ScopeMode = "flat"
	// ScopeBlock gives if/else/while/for bodies their own scope, matching the
	// checker. Assignment updates the nearest existing binding.
	ScopeBlock ScopeMode = "block"
)

// ParseScopeMode maps a configuration string to a ScopeMode. The empty string
// selects ScopeFlat.
func ParseScopeMode(s string) (ScopeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ScopeFlat):
		return ScopeFlat, nil
	case string(ScopeBlock):
		return ScopeBlock, nil
	}
	return "", fmt.Errorf("unknown scope mode %q (expected flat or block)", s)
}

// Config tunes an Interpreter.
type Config struct {
	// Stdout receives print output; os.Stdout when nil.
	Stdout  io.Writer
	Scoping ScopeMode
	// Broadcast lets scalar/matrix combinations of + - and scalar/matrix
	// division apply element by element instead of failing.
	Broadcast bool
}

// Interpreter drives evaluation of program ASTs.
type Interpreter struct {
	global  *runtime.Environment
	checker *typechecker.Checker
	config  Config
	stdout  io.Writer
}

// New returns an interpreter with an empty global environment.
func New(config Config) *Interpreter {
	if config.Scoping == "" {
		config.Scoping = ScopeFlat
	}
	stdout := config.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Interpreter{
		global:  runtime.NewEnvironment(nil),
		checker: typechecker.New(),
		config:  config,
		stdout:  stdout,
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Checker returns the checker whose global scope tracks this interpreter's
// programs.
func (i *Interpreter) Checker() *typechecker.Checker {
	return i.checker
}

// EvaluateProgram executes a program in the global environment. It returns
// the value of a top-level `return` (nil when the program runs to completion
// or returns without a value).
func (i *Interpreter) EvaluateProgram(program *ast.Block) (runtime.Value, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: program is nil")
	}
	for _, stmt := range program.Body {
		out, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			return nil, err
		}
		switch out.kind {
		case outcomeReturn:
			return out.value, nil
		case outcomeBreak:
			return nil, newRuntimeError(stmt, "'break' used outside of loop")
		case outcomeContinue:
			return nil, newRuntimeError(stmt, "'continue' used outside of loop")
		}
	}
	return nil, nil
}

// blockScope returns the environment a construct body runs in.
func (i *Interpreter) blockScope(env *runtime.Environment) *runtime.Environment {
	if i.config.Scoping == ScopeBlock {
		return env.Extend()
	}
	return env
}

type outcomeKind int

const (
	outcomeNormal outcomeKind = iota
	outcomeBreak
	outcomeContinue
	outcomeReturn
)

// outcome is how a statement finished. value is set only for outcomeReturn.
type outcome struct {
	kind  outcomeKind
	value runtime.Value
}

var normal = outcome{kind: outcomeNormal}

// RuntimeError aborts a program run. Line is the source line of the failing
// node.
type RuntimeError struct {
	Line    int
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func newRuntimeError(node ast.Node, format string, args ...any) *RuntimeError {
	line := 0
	if node != nil {
		line = node.Line()
	}
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func wrapRuntimeError(node ast.Node, err error) *RuntimeError {
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	rerr := newRuntimeError(node, "%s", err.Error())
	rerr.Err = err
	return rerr
}

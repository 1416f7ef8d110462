package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
)

// Checker traverses program AST nodes and records diagnostics.
type Checker struct {
	infer     InferenceMap
	global    *Environment
	loopDepth int
}

// Diagnostic represents a type-checking error.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

// Line returns the source line of the offending node (0 when unknown).
func (d Diagnostic) Line() int {
	if d.Node == nil {
		return 0
	}
	return d.Node.Line()
}

func (d Diagnostic) Error() string { return DescribeDiagnostic(d) }

// DescribeDiagnostic renders a diagnostic as "Line N: message".
func DescribeDiagnostic(d Diagnostic) string {
	return fmt.Sprintf("Line %d: %s", d.Line(), d.Message)
}

// InferenceMap records the type computed for every visited expression.
type InferenceMap map[ast.Node]Type

func (m InferenceMap) set(node ast.Node, typ Type) {
	if node == nil {
		return
	}
	m[node] = typ
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{
		infer:  make(InferenceMap),
		global: NewEnvironment(nil),
	}
}

// Global exposes the outermost scope. Bindings made by top-level statements
// persist there across CheckProgram calls.
func (c *Checker) Global() *Environment {
	return c.global
}

// TypeOf returns the type inferred for expr during the last CheckProgram run.
func (c *Checker) TypeOf(expr ast.Expression) (Type, bool) {
	typ, ok := c.infer[expr]
	return typ, ok
}

// CheckProgram type-checks a program and returns its diagnostics. A type error
// never stops the walk; the failing sub-expression types as Unknown instead.
func (c *Checker) CheckProgram(program *ast.Block) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.infer = make(InferenceMap)
	c.loopDepth = 0

	var diagnostics []Diagnostic
	for _, stmt := range program.Body {
		diagnostics = append(diagnostics, c.checkStatement(c.global, stmt)...)
	}
	return diagnostics, nil
}

func (c *Checker) checkExpression(env *Environment, expr ast.Expression) ([]Diagnostic, Type) {
	var (
		diags []Diagnostic
		typ   Type
	)
	switch e := expr.(type) {
	case nil:
		return nil, UnknownType{}
	case *ast.IntegerLiteral:
		typ = intType
	case *ast.FloatLiteral:
		typ = floatType
	case *ast.StringLiteral:
		typ = stringType
	case *ast.Identifier:
		diags, typ = c.checkIdentifier(env, e)
	case *ast.UnaryExpression:
		diags, typ = c.checkUnaryExpression(env, e)
	case *ast.BinaryExpression:
		diags, typ = c.checkBinaryExpression(env, e)
	case *ast.RelationalExpression:
		diags, typ = c.checkRelationalExpression(env, e)
	case *ast.TransposeExpression:
		diags, typ = c.checkTransposeExpression(env, e)
	case *ast.IndexExpression:
		diags, typ = c.checkIndexExpression(env, e)
	case *ast.BuiltinCall:
		diags, typ = c.checkBuiltinCall(env, e)
	case *ast.VectorLiteral:
		diags, typ = c.checkVectorLiteral(env, e)
	case *ast.RangeExpression:
		diags, typ = c.checkRangeExpression(env, e)
	default:
		diags = []Diagnostic{{Message: fmt.Sprintf("unsupported expression %s", expr.NodeType()), Node: expr}}
		typ = UnknownType{}
	}
	c.infer.set(expr, typ)
	return diags, typ
}

func (c *Checker) checkIdentifier(env *Environment, id *ast.Identifier) ([]Diagnostic, Type) {
	sym, ok := env.Lookup(id.Name)
	if !ok {
		return []Diagnostic{undefinedVariable(id.Name, id)}, UnknownType{}
	}
	return nil, sym.Type
}

func undefinedVariable(name string, node ast.Node) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf("Undefined variable '%s'", name), Node: node}
}

package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
)

// checkBuiltinCall types eye, zeros and ones. Each yields an Int matrix whose
// dimensions come from constant arguments; one argument n means n x n. eye
// always builds a square matrix from its first argument.
func (c *Checker) checkBuiltinCall(env *Environment, call *ast.BuiltinCall) ([]Diagnostic, Type) {
	if call == nil {
		return nil, UnknownType{}
	}
	var diags []Diagnostic
	if len(call.Arguments) == 0 {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Function '%s' requires at least 1 argument", call.Name),
			Node:    call,
		})
		return diags, UnknownType{}
	}

	sizes := make([]int, 0, 2)
	known := true
	for i, arg := range call.Arguments {
		argDiags, argType := c.checkExpression(env, arg)
		diags = append(diags, argDiags...)
		if !isUnknownType(argType) && !isIntType(argType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Argument %d of '%s' must be an integer", i+1, call.Name),
				Node:    arg,
			})
			known = false
			continue
		}
		value, ok := constantInt(arg)
		if !ok {
			known = false
			continue
		}
		if value <= 0 {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Argument %d of '%s' must be positive", i+1, call.Name),
				Node:    arg,
			})
			known = false
			continue
		}
		sizes = append(sizes, int(value))
	}
	if len(call.Arguments) > 2 {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Function '%s' accepts at most 2 arguments, got %d", call.Name, len(call.Arguments)),
			Node:    call,
		})
		return diags, UnknownType{}
	}
	if !known {
		return diags, UnknownType{}
	}

	rows, cols := sizes[0], sizes[0]
	if len(sizes) == 2 {
		if call.Name == ast.BuiltinEye && sizes[0] != sizes[1] {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Function 'eye' requires square dimensions, got %dx%d", sizes[0], sizes[1]),
				Node:    call,
			})
		} else {
			cols = sizes[1]
		}
	}
	if err := runtime.CheckSize(rows, cols); err != nil {
		diags = append(diags, Diagnostic{Message: err.Error(), Node: call})
		return diags, UnknownType{}
	}
	return diags, MatrixType{Rows: rows, Cols: cols, Elem: intType}
}

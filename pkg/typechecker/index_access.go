package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
)

// checkIndexExpression types `name[i]` and `name[i, j]`. Constant indices are
// bounds checked against the static shape; the rest must type as Int.
func (c *Checker) checkIndexExpression(env *Environment, expr *ast.IndexExpression) ([]Diagnostic, Type) {
	if expr == nil {
		return nil, UnknownType{}
	}
	var diags []Diagnostic
	indexTypes := make([]Type, len(expr.Indices))
	for i, index := range expr.Indices {
		indexDiags, indexType := c.checkExpression(env, index)
		diags = append(diags, indexDiags...)
		indexTypes[i] = indexType
	}

	sym, ok := env.Lookup(expr.Name)
	if !ok {
		diags = append(diags, undefinedVariable(expr.Name, expr))
		return diags, UnknownType{}
	}
	if isUnknownType(sym.Type) {
		return diags, UnknownType{}
	}
	if !isShapedType(sym.Type) {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Variable '%s' is not indexable", expr.Name),
			Node:    expr,
		})
		return diags, UnknownType{}
	}

	shape := dims(sym.Type)
	if len(expr.Indices) != len(shape) {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Wrong number of indices for '%s': got %d, expected %d", expr.Name, len(expr.Indices), len(shape)),
			Node:    expr,
		})
		return diags, UnknownType{}
	}

	for i, index := range expr.Indices {
		if value, ok := constantInt(index); ok {
			if value < 0 || value >= int64(shape[i]) {
				diags = append(diags, Diagnostic{
					Message: fmt.Sprintf("Index %d out of bounds for '%s' (dimension size is %d)", value, expr.Name, shape[i]),
					Node:    index,
				})
			}
			continue
		}
		if !isUnknownType(indexTypes[i]) && !isIntType(indexTypes[i]) {
			diags = append(diags, Diagnostic{Message: "Index must be an integer", Node: index})
		}
	}

	elem := elemType(sym.Type)
	if isUnknownType(elem) {
		return diags, UnknownType{}
	}
	return diags, elem
}

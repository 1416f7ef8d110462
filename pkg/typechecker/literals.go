package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
)

// checkVectorLiteral types `[...]`. A literal whose first element is itself a
// vector is a matrix and every row must have the first row's length.
func (c *Checker) checkVectorLiteral(env *Environment, lit *ast.VectorLiteral) ([]Diagnostic, Type) {
	if lit == nil {
		return nil, UnknownType{}
	}
	if len(lit.Elements) == 0 {
		return nil, VectorType{Length: 0, Elem: UnknownType{}}
	}

	var diags []Diagnostic
	types := make([]Type, len(lit.Elements))
	for i, elem := range lit.Elements {
		elemDiags, elemType := c.checkExpression(env, elem)
		diags = append(diags, elemDiags...)
		types[i] = elemType
	}

	switch first := types[0].(type) {
	case UnknownType:
		return diags, UnknownType{}
	case VectorType:
		for i, t := range types[1:] {
			row, ok := t.(VectorType)
			if isUnknownType(t) {
				continue
			}
			if !ok {
				diags = append(diags, Diagnostic{Message: "Inconsistent types in matrix initialization", Node: lit.Elements[i+1]})
				return diags, UnknownType{}
			}
			if row.Length != first.Length {
				diags = append(diags, Diagnostic{
					Message: fmt.Sprintf("Row %d has %d elements, expected %d", i+2, row.Length, first.Length),
					Node:    lit.Elements[i+1],
				})
				return diags, UnknownType{}
			}
		}
		return diags, MatrixType{Rows: len(types), Cols: first.Length, Elem: first.Elem}
	case MatrixType:
		diags = append(diags, Diagnostic{Message: "Matrix rows must be vectors", Node: lit.Elements[0]})
		return diags, UnknownType{}
	}

	if !isNumericType(types[0]) {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Vector elements must be numeric (got %s)", typeName(types[0])),
			Node:    lit.Elements[0],
		})
		return diags, UnknownType{}
	}
	for i, t := range types[1:] {
		if isUnknownType(t) || isNumericType(t) {
			continue
		}
		diags = append(diags, Diagnostic{Message: "Inconsistent types in vector initialization", Node: lit.Elements[i+1]})
	}
	return diags, VectorType{Length: len(types), Elem: types[0]}
}

func (c *Checker) checkRangeExpression(env *Environment, rng *ast.RangeExpression) ([]Diagnostic, Type) {
	if rng == nil {
		return nil, UnknownType{}
	}
	startDiags, startType := c.checkExpression(env, rng.Start)
	endDiags, endType := c.checkExpression(env, rng.End)

	diags := append(startDiags, endDiags...)
	if !isUnknownType(startType) && !isIntType(startType) {
		diags = append(diags, Diagnostic{Message: "Range start must be an integer", Node: rng.Start})
	}
	if !isUnknownType(endType) && !isIntType(endType) {
		diags = append(diags, Diagnostic{Message: "Range end must be an integer", Node: rng.End})
	}
	c.infer.set(rng, rangeType)
	return diags, rangeType
}

// constantInt folds integer literals combined with unary minus and + - *.
// Anything else is not a compile-time constant.
func constantInt(expr ast.Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value, true
	case *ast.UnaryExpression:
		if e.Operator != ast.UnaryOperatorNegate {
			return 0, false
		}
		v, ok := constantInt(e.Operand)
		return -v, ok
	case *ast.BinaryExpression:
		left, ok := constantInt(e.Left)
		if !ok {
			return 0, false
		}
		right, ok := constantInt(e.Right)
		if !ok {
			return 0, false
		}
		switch e.Operator {
		case ast.BinaryOperatorAdd:
			return left + right, true
		case ast.BinaryOperatorSub:
			return left - right, true
		case ast.BinaryOperatorMul:
			return left * right, true
		}
	}
	return 0, false
}

package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
)

func (c *Checker) checkUnaryExpression(env *Environment, expr *ast.UnaryExpression) ([]Diagnostic, Type) {
	if expr == nil {
		return nil, UnknownType{}
	}
	diags, operandType := c.checkExpression(env, expr.Operand)

	resultType := Type(UnknownType{})
	switch expr.Operator {
	case ast.UnaryOperatorNegate:
		if isUnknownType(operandType) {
			break
		}
		if !isNumericType(operandType) && !isShapedType(operandType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Unary '%s' requires numeric or matrix/vector operand (got %s)", expr.Operator, typeName(operandType)),
				Node:    expr,
			})
			break
		}
		resultType = operandType
	default:
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("Unsupported unary operator %q", expr.Operator),
			Node:    expr,
		})
	}
	return diags, resultType
}

func (c *Checker) checkBinaryExpression(env *Environment, expr *ast.BinaryExpression) ([]Diagnostic, Type) {
	if expr == nil {
		return nil, UnknownType{}
	}
	leftDiags, leftType := c.checkExpression(env, expr.Left)
	rightDiags, rightType := c.checkExpression(env, expr.Right)

	var diags []Diagnostic
	diags = append(diags, leftDiags...)
	diags = append(diags, rightDiags...)

	opDiags, resultType := binaryResultType(expr.Operator, leftType, rightType, expr)
	diags = append(diags, opDiags...)
	return diags, resultType
}

// binaryResultType applies the operator typing rules to already computed
// operand types. Compound assignment reuses it with the target's type on the
// left.
func binaryResultType(op ast.BinaryOperator, left, right Type, node ast.Node) ([]Diagnostic, Type) {
	if isUnknownType(left) || isUnknownType(right) {
		return nil, UnknownType{}
	}
	fail := func(format string, args ...any) ([]Diagnostic, Type) {
		return []Diagnostic{{Message: fmt.Sprintf(format, args...), Node: node}}, UnknownType{}
	}

	if op.IsElementWise() {
		if !isShapedType(left) || !isShapedType(right) {
			return fail("Element-wise operation '%s' requires matrix/vector operands", op)
		}
		if !sameDims(dims(left), dims(right)) {
			return fail("Incompatible dimensions %s and %s for operation '%s'", formatDims(dims(left)), formatDims(dims(right)), op)
		}
		return nil, withElem(left, promote(elemType(left), elemType(right)))
	}

	leftShaped, rightShaped := isShapedType(left), isShapedType(right)
	if !leftShaped && !isNumericType(left) || !rightShaped && !isNumericType(right) {
		return fail("Operation '%s' requires numeric operands (got %s and %s)", op, typeName(left), typeName(right))
	}

	switch op {
	case ast.BinaryOperatorAdd, ast.BinaryOperatorSub:
		if leftShaped != rightShaped {
			return fail("Cannot perform '%s' on scalar and matrix/vector", op)
		}
		if leftShaped && !sameDims(dims(left), dims(right)) {
			return fail("Incompatible dimensions %s and %s for operation '%s'", formatDims(dims(left)), formatDims(dims(right)), op)
		}
		return nil, withElem(left, promote(elemType(left), elemType(right)))

	case ast.BinaryOperatorMul:
		switch {
		case leftShaped && rightShaped:
			return multiplyShaped(left, right, node)
		case leftShaped:
			return nil, withElem(left, promote(elemType(left), right))
		case rightShaped:
			return nil, withElem(right, promote(left, elemType(right)))
		}
		return nil, promote(left, right)

	case ast.BinaryOperatorDiv:
		switch {
		case leftShaped && rightShaped:
			return fail("Cannot divide matrix by matrix")
		case rightShaped:
			return fail("Cannot divide scalar by matrix")
		case leftShaped:
			return nil, withElem(left, floatType)
		}
		return nil, floatType
	}
	return fail("Unsupported binary operator %q", op)
}

// multiplyShaped types `*` between two shaped operands: matrix product for two
// matrices, dot product for two vectors.
func multiplyShaped(left, right Type, node ast.Node) ([]Diagnostic, Type) {
	lm, leftMatrix := left.(MatrixType)
	rm, rightMatrix := right.(MatrixType)
	switch {
	case leftMatrix && rightMatrix:
		if lm.Cols != rm.Rows {
			return []Diagnostic{{
				Message: fmt.Sprintf("Incompatible dimensions %s and %s for matrix multiplication", formatDims(dims(left)), formatDims(dims(right))),
				Node:    node,
			}}, UnknownType{}
		}
		return nil, MatrixType{Rows: lm.Rows, Cols: rm.Cols, Elem: promote(lm.Elem, rm.Elem)}
	case !leftMatrix && !rightMatrix:
		if !sameDims(dims(left), dims(right)) {
			return []Diagnostic{{
				Message: fmt.Sprintf("Incompatible dimensions %s and %s for dot product", formatDims(dims(left)), formatDims(dims(right))),
				Node:    node,
			}}, UnknownType{}
		}
		return nil, floatType
	}
	return []Diagnostic{{
		Message: fmt.Sprintf("Incompatible dimensions %s and %s for operation '*'", formatDims(dims(left)), formatDims(dims(right))),
		Node:    node,
	}}, UnknownType{}
}

func (c *Checker) checkRelationalExpression(env *Environment, expr *ast.RelationalExpression) ([]Diagnostic, Type) {
	if expr == nil {
		return nil, UnknownType{}
	}
	leftDiags, _ := c.checkExpression(env, expr.Left)
	rightDiags, _ := c.checkExpression(env, expr.Right)
	return append(leftDiags, rightDiags...), intType
}

func (c *Checker) checkTransposeExpression(env *Environment, expr *ast.TransposeExpression) ([]Diagnostic, Type) {
	if expr == nil {
		return nil, UnknownType{}
	}
	diags, operandType := c.checkExpression(env, expr.Operand)
	switch t := operandType.(type) {
	case UnknownType:
		return diags, UnknownType{}
	case MatrixType:
		return diags, MatrixType{Rows: t.Cols, Cols: t.Rows, Elem: t.Elem}
	case VectorType:
		return diags, t
	}
	diags = append(diags, Diagnostic{Message: "Transpose requires matrix/vector operand", Node: expr})
	return diags, UnknownType{}
}

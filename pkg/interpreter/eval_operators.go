package interpreter

import (
	"errors"
	"math"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch v := operand.(type) {
	case runtime.IntegerValue:
		if v.Val == math.MinInt64 {
			return nil, newRuntimeError(expr, "Integer overflow in unary '%s'", expr.Operator)
		}
		return runtime.IntegerValue{Val: -v.Val}, nil
	case runtime.FloatValue:
		return runtime.FloatValue{Val: -v.Val}, nil
	case *runtime.ArrayValue:
		return runtime.Negate(v), nil
	}
	return nil, newRuntimeError(expr, "Unary '%s' requires numeric or matrix/vector operand (got %s)", expr.Operator, runtime.Describe(operand))
}

// applyBinary evaluates an arithmetic operator over two values. node supplies
// the line for errors.
func (i *Interpreter) applyBinary(op ast.BinaryOperator, left, right runtime.Value, node ast.Node) (runtime.Value, error) {
	la, leftShaped := left.(*runtime.ArrayValue)
	ra, rightShaped := right.(*runtime.ArrayValue)

	if !leftShaped && !rightShaped {
		return applyScalar(op, left, right, node)
	}

	if op.IsElementWise() {
		switch {
		case leftShaped && rightShaped:
			out, err := runtime.ElementWise(la, ra, op)
			return shapedResult(node, out, err)
		case i.config.Broadcast:
			return i.broadcast(op, left, right, node)
		}
		return nil, newRuntimeError(node, "Element-wise operation '%s' requires matrix/vector operands", op)
	}

	switch op {
	case ast.BinaryOperatorAdd, ast.BinaryOperatorSub:
		if leftShaped && rightShaped {
			out, err := runtime.ElementWise(la, ra, op)
			return shapedResult(node, out, err)
		}
		if i.config.Broadcast {
			return i.broadcast(op, left, right, node)
		}
		return nil, newRuntimeError(node, "Cannot perform '%s' on scalar and matrix/vector", op)

	case ast.BinaryOperatorMul:
		switch {
		case leftShaped && rightShaped:
			if la.Rank == 2 && ra.Rank == 2 {
				out, err := runtime.MatMul(la, ra)
				return shapedResult(node, out, err)
			}
			if la.Rank == 1 && ra.Rank == 1 {
				dot, err := runtime.Dot(la, ra)
				if err != nil {
					return nil, wrapRuntimeError(node, err)
				}
				return dot, nil
			}
			return nil, newRuntimeError(node, "Incompatible dimensions %s and %s for operation '*'", la.ShapeString(), ra.ShapeString())
		default:
			return i.broadcast(op, left, right, node)
		}

	case ast.BinaryOperatorDiv:
		switch {
		case leftShaped && rightShaped:
			return nil, newRuntimeError(node, "Cannot divide matrix by matrix")
		case rightShaped && !i.config.Broadcast:
			return nil, newRuntimeError(node, "Cannot divide scalar by matrix")
		default:
			return i.broadcast(op, left, right, node)
		}
	}
	return nil, newRuntimeError(node, "unsupported operator '%s'", op)
}

// broadcast applies op between a shaped operand and a scalar one.
func (i *Interpreter) broadcast(op ast.BinaryOperator, left, right runtime.Value, node ast.Node) (runtime.Value, error) {
	arr, ok := left.(*runtime.ArrayValue)
	scalar, scalarLeft := right, false
	if !ok {
		arr, ok = right.(*runtime.ArrayValue)
		scalar, scalarLeft = left, true
	}
	if !ok {
		return nil, newRuntimeError(node, "Operation '%s' requires a matrix/vector operand", op)
	}
	n, isFloat, ok := runtime.NumericValue(scalar)
	if !ok {
		return nil, newRuntimeError(node, "Operation '%s' requires numeric operands (got %s and %s)", op, runtime.Describe(left), runtime.Describe(right))
	}
	out, err := runtime.ScalarElementWise(arr, n, isFloat, op, scalarLeft)
	return shapedResult(node, out, err)
}

// shapedResult attaches the node's line to a failed kernel call.
func shapedResult(node ast.Node, arr *runtime.ArrayValue, err error) (runtime.Value, error) {
	if err != nil {
		return nil, kernelError(node, err)
	}
	return arr, nil
}

func kernelError(node ast.Node, err error) *RuntimeError {
	if errors.Is(err, runtime.ErrDivisionByZero) {
		rerr := newRuntimeError(node, "Division by zero")
		rerr.Err = err
		return rerr
	}
	return wrapRuntimeError(node, err)
}

// applyScalar implements arithmetic on two scalars. Int op Int stays Int
// except for division, which always yields a float. Int results that do not
// fit in 64 bits are runtime errors.
func applyScalar(op ast.BinaryOperator, left, right runtime.Value, node ast.Node) (runtime.Value, error) {
	if op.IsElementWise() {
		return nil, newRuntimeError(node, "Element-wise operation '%s' requires matrix/vector operands", op)
	}
	li, leftInt := left.(runtime.IntegerValue)
	ri, rightInt := right.(runtime.IntegerValue)
	if leftInt && rightInt && op != ast.BinaryOperatorDiv {
		v, ok := checkedIntArith(op, li.Val, ri.Val)
		if !ok {
			return nil, newRuntimeError(node, "Integer overflow in '%s'", op)
		}
		return runtime.IntegerValue{Val: v}, nil
	}

	l, _, lok := runtime.NumericValue(left)
	r, _, rok := runtime.NumericValue(right)
	if !lok || !rok {
		return nil, newRuntimeError(node, "Operation '%s' requires numeric operands (got %s and %s)", op, runtime.Describe(left), runtime.Describe(right))
	}
	switch op {
	case ast.BinaryOperatorAdd:
		return runtime.FloatValue{Val: l + r}, nil
	case ast.BinaryOperatorSub:
		return runtime.FloatValue{Val: l - r}, nil
	case ast.BinaryOperatorMul:
		return runtime.FloatValue{Val: l * r}, nil
	case ast.BinaryOperatorDiv:
		if r == 0 {
			return nil, newRuntimeError(node, "Division by zero")
		}
		return runtime.FloatValue{Val: l / r}, nil
	}
	return nil, newRuntimeError(node, "unsupported operator '%s'", op)
}

// evaluateRelationalExpression yields Int 1 or 0. Numbers compare by value,
// strings lexicographically; arrays support only == and != (same shape and
// elements).
func (i *Interpreter) evaluateRelationalExpression(expr *ast.RelationalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	var cmp int
	li, leftInt := left.(runtime.IntegerValue)
	ri, rightInt := right.(runtime.IntegerValue)
	switch {
	case leftInt && rightInt:
		switch {
		case li.Val < ri.Val:
			cmp = -1
		case li.Val > ri.Val:
			cmp = 1
		}
	case isNumeric(left) && isNumeric(right):
		l, _, _ := runtime.NumericValue(left)
		r, _, _ := runtime.NumericValue(right)
		cmp = compareFloats(l, r)
	case left.Kind() == runtime.KindString && right.Kind() == runtime.KindString:
		l, r := left.(runtime.StringValue).Val, right.(runtime.StringValue).Val
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	case runtime.IsShaped(left) && runtime.IsShaped(right):
		equal := left.(*runtime.ArrayValue).Equal(right.(*runtime.ArrayValue))
		switch expr.Operator {
		case ast.RelationalOperatorEqual:
			return boolValue(equal), nil
		case ast.RelationalOperatorNotEqual:
			return boolValue(!equal), nil
		}
		return nil, newRuntimeError(expr, "Operator '%s' is not defined for matrix/vector operands", expr.Operator)
	default:
		return nil, newRuntimeError(expr, "Cannot compare %s and %s", runtime.Describe(left), runtime.Describe(right))
	}

	switch expr.Operator {
	case ast.RelationalOperatorLess:
		return boolValue(cmp < 0), nil
	case ast.RelationalOperatorGreater:
		return boolValue(cmp > 0), nil
	case ast.RelationalOperatorLessEqual:
		return boolValue(cmp <= 0), nil
	case ast.RelationalOperatorGreaterEqual:
		return boolValue(cmp >= 0), nil
	case ast.RelationalOperatorEqual:
		return boolValue(cmp == 0), nil
	case ast.RelationalOperatorNotEqual:
		return boolValue(cmp != 0), nil
	}
	return nil, newRuntimeError(expr, "unsupported relational operator '%s'", expr.Operator)
}

func isNumeric(v runtime.Value) bool {
	_, _, ok := runtime.NumericValue(v)
	return ok
}

func compareFloats(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func checkedIntArith(op ast.BinaryOperator, a, b int64) (int64, bool) {
	switch op {
	case ast.BinaryOperatorAdd:
		sum := a + b
		return sum, (sum > a) == (b > 0)
	case ast.BinaryOperatorSub:
		diff := a - b
		return diff, (diff < a) == (b > 0)
	case ast.BinaryOperatorMul:
		if a == 0 || b == 0 {
			return 0, true
		}
		prod := a * b
		if prod/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		return prod, true
	}
	return 0, false
}

func boolValue(b bool) runtime.IntegerValue {
	if b {
		return runtime.IntegerValue{Val: 1}
	}
	return runtime.IntegerValue{Val: 0}
}

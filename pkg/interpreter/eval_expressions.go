package interpreter

import (
	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return nil, wrapRuntimeError(n, err)
		}
		return val, nil
	case *ast.VectorLiteral:
		return i.evaluateVectorLiteral(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		left, err := i.evaluateExpression(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(n.Right, env)
		if err != nil {
			return nil, err
		}
		return i.applyBinary(n.Operator, left, right, n)
	case *ast.RelationalExpression:
		return i.evaluateRelationalExpression(n, env)
	case *ast.TransposeExpression:
		operand, err := i.evaluateExpression(n.Operand, env)
		if err != nil {
			return nil, err
		}
		arr, ok := operand.(*runtime.ArrayValue)
		if !ok {
			return nil, newRuntimeError(n, "Transpose requires matrix/vector operand")
		}
		return arr.Transpose(), nil
	case *ast.IndexExpression:
		arr, indices, err := i.resolveIndex(n, env)
		if err != nil {
			return nil, err
		}
		val, err := arr.At(indices...)
		if err != nil {
			return nil, wrapRuntimeError(n, err)
		}
		return val, nil
	case *ast.BuiltinCall:
		return i.evaluateBuiltinCall(n, env)
	case *ast.RangeExpression:
		return i.evaluateRange(n, env)
	case nil:
		return nil, newRuntimeError(nil, "missing expression")
	default:
		return nil, newRuntimeError(node, "unsupported expression %s", node.NodeType())
	}
}

// evaluateVectorLiteral builds a vector from scalar elements or a matrix from
// vector rows of equal length. Any float element makes the array Float.
func (i *Interpreter) evaluateVectorLiteral(lit *ast.VectorLiteral, env *runtime.Environment) (runtime.Value, error) {
	values := make([]runtime.Value, len(lit.Elements))
	for idx, elem := range lit.Elements {
		val, err := i.evaluateExpression(elem, env)
		if err != nil {
			return nil, err
		}
		values[idx] = val
	}
	if len(values) == 0 {
		return runtime.NewVector(runtime.ElemInt, nil), nil
	}

	if first, ok := values[0].(*runtime.ArrayValue); ok {
		if first.Rank != 1 {
			return nil, newRuntimeError(lit, "Matrix rows must be vectors")
		}
		elem := runtime.ElemInt
		data := make([]float64, 0, len(values)*first.Cols)
		for idx, val := range values {
			row, ok := val.(*runtime.ArrayValue)
			if !ok || row.Rank != 1 {
				return nil, newRuntimeError(lit, "Inconsistent types in matrix initialization")
			}
			if row.Cols != first.Cols {
				return nil, newRuntimeError(lit, "Row %d has %d elements, expected %d", idx+1, row.Cols, first.Cols)
			}
			if row.Elem == runtime.ElemFloat {
				elem = runtime.ElemFloat
			}
			data = append(data, row.Data...)
		}
		m, err := runtime.NewMatrix(len(values), first.Cols, elem, data)
		if err != nil {
			return nil, wrapRuntimeError(lit, err)
		}
		return m, nil
	}

	elem := runtime.ElemInt
	data := make([]float64, len(values))
	for idx, val := range values {
		n, isFloat, ok := runtime.NumericValue(val)
		if !ok {
			if runtime.IsShaped(val) {
				return nil, newRuntimeError(lit, "Inconsistent types in vector initialization")
			}
			return nil, newRuntimeError(lit, "Vector elements must be numeric (got %s)", runtime.Describe(val))
		}
		if isFloat {
			elem = runtime.ElemFloat
		}
		data[idx] = n
	}
	return runtime.NewVector(elem, data), nil
}

// resolveIndex evaluates the indices of name[...] and checks them against the
// array bound to name.
func (i *Interpreter) resolveIndex(ref *ast.IndexExpression, env *runtime.Environment) (*runtime.ArrayValue, []int64, error) {
	indices := make([]int64, len(ref.Indices))
	for idx, expr := range ref.Indices {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, nil, err
		}
		n, ok := val.(runtime.IntegerValue)
		if !ok {
			return nil, nil, newRuntimeError(expr, "Index must be an integer, got %s", runtime.Describe(val))
		}
		indices[idx] = n.Val
	}

	base, err := env.Get(ref.Name)
	if err != nil {
		return nil, nil, wrapRuntimeError(ref, err)
	}
	arr, ok := base.(*runtime.ArrayValue)
	if !ok {
		return nil, nil, newRuntimeError(ref, "Variable '%s' is not indexable", ref.Name)
	}
	shape := arr.Shape()
	if len(indices) != len(shape) {
		return nil, nil, newRuntimeError(ref, "Wrong number of indices for '%s': got %d, expected %d", ref.Name, len(indices), len(shape))
	}
	for idx, n := range indices {
		if n < 0 || n >= int64(shape[idx]) {
			return nil, nil, newRuntimeError(ref, "Index %d out of bounds for '%s' (dimension size is %d)", n, ref.Name, shape[idx])
		}
	}
	return arr, indices, nil
}

// evaluateBuiltinCall runs eye, zeros and ones. One argument n means n x n;
// eye always uses only its first argument.
func (i *Interpreter) evaluateBuiltinCall(call *ast.BuiltinCall, env *runtime.Environment) (runtime.Value, error) {
	if len(call.Arguments) == 0 || len(call.Arguments) > 2 {
		return nil, newRuntimeError(call, "Function '%s' takes 1 or 2 arguments, got %d", call.Name, len(call.Arguments))
	}
	sizes := make([]int, len(call.Arguments))
	for idx, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		n, ok := val.(runtime.IntegerValue)
		if !ok {
			return nil, newRuntimeError(arg, "Argument %d of '%s' must be an integer", idx+1, call.Name)
		}
		if n.Val <= 0 {
			return nil, newRuntimeError(arg, "Argument %d of '%s' must be positive", idx+1, call.Name)
		}
		sizes[idx] = int(n.Val)
	}
	rows, cols := sizes[0], sizes[0]
	if len(sizes) == 2 {
		cols = sizes[1]
	}
	var (
		m   *runtime.ArrayValue
		err error
	)
	switch call.Name {
	case ast.BuiltinEye:
		m, err = runtime.Identity(sizes[0])
	case ast.BuiltinZeros:
		m, err = runtime.Filled(rows, cols, 0)
	case ast.BuiltinOnes:
		m, err = runtime.Filled(rows, cols, 1)
	default:
		return nil, newRuntimeError(call, "unknown function '%s'", call.Name)
	}
	if err != nil {
		return nil, wrapRuntimeError(call, err)
	}
	return m, nil
}

func (i *Interpreter) evaluateRange(rng *ast.RangeExpression, env *runtime.Environment) (runtime.RangeValue, error) {
	start, err := i.evaluateExpression(rng.Start, env)
	if err != nil {
		return runtime.RangeValue{}, err
	}
	end, err := i.evaluateExpression(rng.End, env)
	if err != nil {
		return runtime.RangeValue{}, err
	}
	s, ok := start.(runtime.IntegerValue)
	if !ok {
		return runtime.RangeValue{}, newRuntimeError(rng, "Range start must be an integer")
	}
	e, ok := end.(runtime.IntegerValue)
	if !ok {
		return runtime.RangeValue{}, newRuntimeError(rng, "Range end must be an integer")
	}
	return runtime.RangeValue{Start: s.Val, End: e.Val}, nil
}

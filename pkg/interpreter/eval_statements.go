package interpreter

import (
	"fmt"
	"strings"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (outcome, error) {
	switch n := node.(type) {
	case nil:
		return normal, nil
	case *ast.AssignmentStatement:
		return normal, i.evaluateAssignment(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.BreakStatement:
		return outcome{kind: outcomeBreak}, nil
	case *ast.ContinueStatement:
		return outcome{kind: outcomeContinue}, nil
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.PrintStatement:
		return normal, i.evaluatePrintStatement(n, env)
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.ErrorNode:
		return normal, nil
	default:
		return normal, newRuntimeError(node, "unsupported statement %s", node.NodeType())
	}
}

// evaluateBlock runs statements in env and stops at the first non-normal
// outcome. The caller decides whether a block gets its own scope.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (outcome, error) {
	for _, stmt := range block.Body {
		out, err := i.evaluateStatement(stmt, env)
		if err != nil || out.kind != outcomeNormal {
			return out, err
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (outcome, error) {
	ok, err := i.evaluateCondition(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if ok {
		return i.evaluateStatement(stmt.Then, i.blockScope(env))
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, i.blockScope(env))
	}
	return normal, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (outcome, error) {
	for {
		ok, err := i.evaluateCondition(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !ok {
			return normal, nil
		}
		out, err := i.evaluateStatement(loop.Body, i.blockScope(env))
		if err != nil {
			return normal, err
		}
		switch out.kind {
		case outcomeBreak:
			return normal, nil
		case outcomeReturn:
			return out, nil
		}
	}
}

// evaluateForLoop iterates start..end inclusive. Both bounds are evaluated
// once; reassigning the loop variable in the body does not change the
// iteration.
func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (outcome, error) {
	if loop.Range == nil {
		return normal, newRuntimeError(loop, "for loop requires a range")
	}
	rng, err := i.evaluateRange(loop.Range, env)
	if err != nil {
		return normal, err
	}
	for n := rng.Start; n <= rng.End; n++ {
		scope := i.blockScope(env)
		scope.Define(loop.Variable, runtime.IntegerValue{Val: n})
		out, err := i.evaluateStatement(loop.Body, scope)
		if err != nil {
			return normal, err
		}
		switch out.kind {
		case outcomeBreak:
			return normal, nil
		case outcomeReturn:
			return out, nil
		}
		if n == rng.End {
			break
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (outcome, error) {
	if stmt.Argument == nil {
		return outcome{kind: outcomeReturn}, nil
	}
	val, err := i.evaluateExpression(stmt.Argument, env)
	if err != nil {
		return normal, err
	}
	return outcome{kind: outcomeReturn, value: val}, nil
}

// evaluatePrintStatement writes the arguments separated by spaces and ends
// the line. Nothing is written when an argument fails.
func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	parts := make([]string, 0, len(stmt.Arguments))
	for _, arg := range stmt.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return err
		}
		parts = append(parts, runtime.Format(val))
	}
	if _, err := fmt.Fprintln(i.stdout, strings.Join(parts, " ")); err != nil {
		return fmt.Errorf("interpreter: print: %w", err)
	}
	return nil
}

// evaluateCondition applies the truthiness rule: a nonzero number or a
// nonempty string is true.
func (i *Interpreter) evaluateCondition(expr ast.Expression, env *runtime.Environment) (bool, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	switch v := val.(type) {
	case runtime.IntegerValue:
		return v.Val != 0, nil
	case runtime.FloatValue:
		return v.Val != 0, nil
	case runtime.StringValue:
		return v.Val != "", nil
	}
	return false, newRuntimeError(expr, "Condition must be a scalar, got %s", runtime.Describe(val))
}

func (i *Interpreter) evaluateAssignment(stmt *ast.AssignmentStatement, env *runtime.Environment) error {
	value, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	op, compound := stmt.Operator.BinaryOperator()

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		if compound {
			current, err := env.Get(target.Name)
			if err != nil {
				return wrapRuntimeError(target, err)
			}
			value, err = i.applyBinary(op, current, value, stmt)
			if err != nil {
				return err
			}
		} else if arr, ok := value.(*runtime.ArrayValue); ok {
			value = arr.Clone()
		}
		env.Set(target.Name, value)
		return nil

	case *ast.IndexExpression:
		arr, indices, err := i.resolveIndex(target, env)
		if err != nil {
			return err
		}
		if compound {
			current, err := arr.At(indices...)
			if err != nil {
				return wrapRuntimeError(target, err)
			}
			value, err = i.applyBinary(op, current, value, stmt)
			if err != nil {
				return err
			}
		}
		if runtime.IsShaped(value) {
			return newRuntimeError(stmt, "Cannot assign matrix/vector to a single element of '%s'", target.Name)
		}
		if err := arr.Set(value, indices...); err != nil {
			return wrapRuntimeError(stmt, err)
		}
		return nil
	}
	return newRuntimeError(stmt, "invalid assignment target")
}

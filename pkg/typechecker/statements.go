package typechecker

import (
	"fmt"

	"mlang/interpreter-go/pkg/ast"
)

func (c *Checker) checkStatement(env *Environment, stmt ast.Statement) []Diagnostic {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.AssignmentStatement:
		return c.checkAssignment(env, s)
	case *ast.IfStatement:
		return c.checkIfStatement(env, s)
	case *ast.WhileLoop:
		return c.checkWhileLoop(env, s)
	case *ast.ForLoop:
		return c.checkForLoop(env, s)
	case *ast.BreakStatement:
		if !c.inLoopContext() {
			return []Diagnostic{{Message: "'break' used outside of loop", Node: s}}
		}
		return nil
	case *ast.ContinueStatement:
		if !c.inLoopContext() {
			return []Diagnostic{{Message: "'continue' used outside of loop", Node: s}}
		}
		return nil
	case *ast.ReturnStatement:
		if s.Argument == nil {
			return nil
		}
		diags, _ := c.checkExpression(env, s.Argument)
		return diags
	case *ast.PrintStatement:
		var diags []Diagnostic
		for _, arg := range s.Arguments {
			argDiags, _ := c.checkExpression(env, arg)
			diags = append(diags, argDiags...)
		}
		return diags
	case *ast.Block:
		var diags []Diagnostic
		for _, inner := range s.Body {
			diags = append(diags, c.checkStatement(env, inner)...)
		}
		return diags
	case *ast.ErrorNode:
		return nil
	default:
		return []Diagnostic{{Message: fmt.Sprintf("unsupported statement %s", stmt.NodeType()), Node: stmt}}
	}
}

// checkAssignment binds plain targets in the current scope. Compound
// operators require an existing binding and rebind it to the combined type.
func (c *Checker) checkAssignment(env *Environment, stmt *ast.AssignmentStatement) []Diagnostic {
	diags, valueType := c.checkExpression(env, stmt.Value)

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		op, compound := stmt.Operator.BinaryOperator()
		if !compound {
			env.Define(target.Name, valueType)
			c.infer.set(target, valueType)
			return diags
		}
		sym, ok := env.Lookup(target.Name)
		if !ok {
			return append(diags, undefinedVariable(target.Name, target))
		}
		opDiags, resultType := binaryResultType(op, sym.Type, valueType, stmt)
		diags = append(diags, opDiags...)
		env.Define(target.Name, resultType)
		c.infer.set(target, resultType)
		return diags

	case *ast.IndexExpression:
		targetDiags, elem := c.checkIndexExpression(env, target)
		diags = append(diags, targetDiags...)
		c.infer.set(target, elem)
		if isShapedType(valueType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Cannot assign matrix/vector to a single element of '%s'", target.Name),
				Node:    stmt,
			})
		} else if !isUnknownType(valueType) && !isNumericType(valueType) {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("Cannot assign %s to an element of '%s'", typeName(valueType), target.Name),
				Node:    stmt,
			})
		}
		return diags
	}
	return append(diags, Diagnostic{Message: "invalid assignment target", Node: stmt})
}

func (c *Checker) checkIfStatement(env *Environment, stmt *ast.IfStatement) []Diagnostic {
	diags, _ := c.checkExpression(env, stmt.Condition)
	diags = append(diags, c.checkStatement(env.Extend(), stmt.Then)...)
	if stmt.Else != nil {
		diags = append(diags, c.checkStatement(env.Extend(), stmt.Else)...)
	}
	return diags
}

func (c *Checker) checkWhileLoop(env *Environment, loop *ast.WhileLoop) []Diagnostic {
	diags, _ := c.checkExpression(env, loop.Condition)
	c.pushLoopContext()
	diags = append(diags, c.checkStatement(env.Extend(), loop.Body)...)
	c.popLoopContext()
	return diags
}

func (c *Checker) checkForLoop(env *Environment, loop *ast.ForLoop) []Diagnostic {
	diags, _ := c.checkRangeExpression(env, loop.Range)
	c.pushLoopContext()
	scope := env.Extend()
	scope.Define(loop.Variable, intType)
	diags = append(diags, c.checkStatement(scope, loop.Body)...)
	c.popLoopContext()
	return diags
}

package ast

// Short constructors for building trees in tests and fixtures. Every node they
// create carries line 0; use the NewX constructors when the line matters.

func Prog(stmts ...Statement) *Block { return NewBlock(stmts, 0) }

func Blk(stmts ...Statement) *Block { return NewBlock(stmts, 0) }

func ID(name string) *Identifier { return NewIdentifier(name, 0) }

func Int(v int64) *IntegerLiteral { return NewIntegerLiteral(v, 0) }

func Flt(v float64) *FloatLiteral { return NewFloatLiteral(v, 0) }

func Str(v string) *StringLiteral { return NewStringLiteral(v, 0) }

func Vec(elems ...Expression) *VectorLiteral { return NewVectorLiteral(elems, 0) }

// Mat builds a matrix literal from rows of integer values.
func Mat(rows ...[]int64) *VectorLiteral {
	out := make([]Expression, len(rows))
	for i, row := range rows {
		elems := make([]Expression, len(row))
		for j, v := range row {
			elems[j] = Int(v)
		}
		out[i] = Vec(elems...)
	}
	return Vec(out...)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNegate, operand, 0)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(BinaryOperator(op), left, right, 0)
}

func Rel(op string, left, right Expression) *RelationalExpression {
	return NewRelationalExpression(RelationalOperator(op), left, right, 0)
}

func T(operand Expression) *TransposeExpression { return NewTransposeExpression(operand, 0) }

func Index(name string, indices ...Expression) *IndexExpression {
	return NewIndexExpression(name, indices, 0)
}

func Call(name string, args ...Expression) *BuiltinCall {
	return NewBuiltinCall(BuiltinName(name), args, 0)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(AssignmentAssign, target, value, 0)
}

func AssignOp(op string, target AssignmentTarget, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(AssignmentOperator(op), target, value, 0)
}

func If(cond Expression, then Statement, elseBody Statement) *IfStatement {
	return NewIfStatement(cond, then, elseBody, 0)
}

func While(cond Expression, body Statement) *WhileLoop { return NewWhileLoop(cond, body, 0) }

func For(variable string, start, end Expression, body Statement) *ForLoop {
	return NewForLoop(variable, NewRangeExpression(start, end, 0), body, 0)
}

func Brk() *BreakStatement { return NewBreakStatement(0) }

func Cont() *ContinueStatement { return NewContinueStatement(0) }

func Ret(arg Expression) *ReturnStatement { return NewReturnStatement(arg, 0) }

func Print(args ...Expression) *PrintStatement { return NewPrintStatement(args, 0) }

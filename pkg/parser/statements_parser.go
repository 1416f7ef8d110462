package parser

import (
	"mlang/interpreter-go/pkg/ast"
)

// statements parses statements until '}' or end of input.
func (p *ProgramParser) statements() []ast.Statement {
	body := make([]ast.Statement, 0)
	for !p.atEnd() && !p.check(RBRACE) {
		body = append(body, p.parseStatement())
	}
	return body
}

// parseStatement parses one statement, recovering from syntax errors by
// recording a diagnostic and returning an ErrorNode.
func (p *ProgramParser) parseStatement() ast.Statement {
	start := p.pos
	line := p.peek().Line
	stmt, err := p.statement()
	if err != nil {
		p.record(err)
		p.synchronize(start)
		return ast.NewErrorNode(line)
	}
	return stmt
}

func (p *ProgramParser) statement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case LBRACE:
		return p.parseBlock()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case BREAK:
		p.advance()
		if _, err := p.expect(SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		return ast.NewBreakStatement(tok.Line), nil
	case CONTINUE:
		p.advance()
		if _, err := p.expect(SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		return ast.NewContinueStatement(tok.Line), nil
	case RETURN:
		return p.parseReturn()
	case PRINT:
		return p.parsePrint()
	case ID:
		return p.parseAssignment()
	default:
		return nil, p.errorf("statement")
	}
}

func (p *ProgramParser) parseBlock() (ast.Statement, error) {
	open := p.advance()
	p.depth++
	body := p.statements()
	p.depth--
	if _, err := p.expect(RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(body, open.Line), nil
}

// parseIf attaches an `else` to the innermost pending if: the then-branch is
// parsed first, so a nested if consumes the else before control returns here.
func (p *ProgramParser) parseIf() (ast.Statement, error) {
	kw := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then := p.parseStatement()
	var elseBody ast.Statement
	if _, ok := p.match(ELSE); ok {
		elseBody = p.parseStatement()
	}
	return ast.NewIfStatement(cond, then, elseBody, kw.Line), nil
}

func (p *ProgramParser) parseWhile() (ast.Statement, error) {
	kw := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body := p.parseStatement()
	return ast.NewWhileLoop(cond, body, kw.Line), nil
}

func (p *ProgramParser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseFor parses `for name = start : end stmt`.
func (p *ProgramParser) parseFor() (ast.Statement, error) {
	kw := p.advance()
	name, err := p.expect(ID, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(COLON, "':'")
	if err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rng := ast.NewRangeExpression(start, end, colon.Line)
	body := p.parseStatement()
	return ast.NewForLoop(name.Value.(string), rng, body, kw.Line), nil
}

func (p *ProgramParser) parseReturn() (ast.Statement, error) {
	kw := p.advance()
	var arg ast.Expression
	if !p.check(SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg = expr
	}
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(arg, kw.Line), nil
}

func (p *ProgramParser) parsePrint() (ast.Statement, error) {
	kw := p.advance()
	args, err := p.parseExpressionList(SEMICOLON)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, p.errorf("expression")
	}
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(args, kw.Line), nil
}

var assignmentOperators = map[TokenKind]ast.AssignmentOperator{
	ASSIGN:    ast.AssignmentAssign,
	ADDASSIGN: ast.AssignmentAdd,
	SUBASSIGN: ast.AssignmentSub,
	MULASSIGN: ast.AssignmentMul,
	DIVASSIGN: ast.AssignmentDiv,
}

func (p *ProgramParser) parseAssignment() (ast.Statement, error) {
	nameTok := p.advance()
	var target ast.AssignmentTarget = ast.NewIdentifier(nameTok.Value.(string), nameTok.Line)
	if p.check(LBRACKET) {
		ref, err := p.parseIndexSuffix(nameTok)
		if err != nil {
			return nil, err
		}
		target = ref
	}
	opTok := p.peek()
	op, ok := assignmentOperators[opTok.Kind]
	if !ok {
		return nil, p.errorf("assignment operator")
	}
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewAssignmentStatement(op, target, value, nameTok.Line), nil
}

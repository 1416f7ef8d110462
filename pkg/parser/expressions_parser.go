package parser

import (
	"strconv"

	"mlang/interpreter-go/pkg/ast"
)

// Precedence, lowest to highest:
//
//	relational  < > <= >= != ==   (non-associative)
//	additive    + -
//	additive    .+ .-
//	multiply    * /
//	multiply    .* ./
//	unary       -
//	postfix     '
//
// All binary levels are left-associative.

var relationalOperators = map[TokenKind]ast.RelationalOperator{
	LESS:    ast.RelationalOperatorLess,
	GREATER: ast.RelationalOperatorGreater,
	LE:      ast.RelationalOperatorLessEqual,
	GE:      ast.RelationalOperatorGreaterEqual,
	NE:      ast.RelationalOperatorNotEqual,
	EQ:      ast.RelationalOperatorEqual,
}

var binaryLevels = [][]TokenKind{
	{PLUS, MINUS},
	{DOTADD, DOTSUB},
	{MULT, DIV},
	{DOTMUL, DOTDIV},
}

var binaryOperators = map[TokenKind]ast.BinaryOperator{
	PLUS:   ast.BinaryOperatorAdd,
	MINUS:  ast.BinaryOperatorSub,
	MULT:   ast.BinaryOperatorMul,
	DIV:    ast.BinaryOperatorDiv,
	DOTADD: ast.BinaryOperatorDotAdd,
	DOTSUB: ast.BinaryOperatorDotSub,
	DOTMUL: ast.BinaryOperatorDotMul,
	DOTDIV: ast.BinaryOperatorDotDiv,
}

var builtinNames = map[TokenKind]ast.BuiltinName{
	EYE:   ast.BuiltinEye,
	ZEROS: ast.BuiltinZeros,
	ONES:  ast.BuiltinOnes,
}

func (p *ProgramParser) parseExpression() (ast.Expression, error) {
	left, err := p.parseBinaryLevel(0)
	if err != nil {
		return nil, err
	}
	op, ok := relationalOperators[p.peek().Kind]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseBinaryLevel(0)
	if err != nil {
		return nil, err
	}
	if _, chained := relationalOperators[p.peek().Kind]; chained {
		return nil, p.errorf("end of comparison (relational operators do not chain)")
	}
	return ast.NewRelationalExpression(op, left, right, left.Line()), nil
}

func (p *ProgramParser) parseBinaryLevel(level int) (ast.Expression, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinaryLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for p.check(binaryLevels[level]...) {
		opTok := p.advance()
		right, err := p.parseBinaryLevel(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(binaryOperators[opTok.Kind], left, right, left.Line())
	}
	return left, nil
}

// parseUnary binds minus tighter than every binary operator but looser than
// transpose, so -a' is -(a').
func (p *ProgramParser) parseUnary() (ast.Expression, error) {
	if tok, ok := p.match(MINUS); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperatorNegate, operand, tok.Line), nil
	}
	return p.parsePostfix()
}

func (p *ProgramParser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(TRANSPOSE)
		if !ok {
			return expr, nil
		}
		expr = ast.NewTransposeExpression(expr, tok.Line)
	}
}

func (p *ProgramParser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case INTNUM:
		p.advance()
		return ast.NewIntegerLiteral(tok.Value.(int64), tok.Line), nil
	case FLOATNUM:
		p.advance()
		return ast.NewFloatLiteral(tok.Value.(float64), tok.Line), nil
	case STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Value.(string), tok.Line), nil
	case ID:
		p.advance()
		if p.check(LBRACKET) {
			return p.parseIndexSuffix(tok)
		}
		return ast.NewIdentifier(tok.Value.(string), tok.Line), nil
	case EYE, ZEROS, ONES:
		return p.parseBuiltinCall()
	case LBRACKET:
		return p.parseVectorLiteral()
	case LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("expression")
	}
}

// parseIndexSuffix parses `[i]` or `[i, j]` after the name token.
func (p *ProgramParser) parseIndexSuffix(name Token) (*ast.IndexExpression, error) {
	p.advance()
	indices, err := p.parseExpressionList(RBRACKET)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, p.errorf("index expression")
	}
	if len(indices) > 2 {
		return nil, &Diagnostic{Kind: DiagSyntax, Line: name.Line, Found: "index list of length " + strconv.Itoa(len(indices)), Expected: "one or two indices"}
	}
	if _, err := p.expect(RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return ast.NewIndexExpression(name.Value.(string), indices, name.Line), nil
}

func (p *ProgramParser) parseBuiltinCall() (ast.Expression, error) {
	nameTok := p.advance()
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList(RPAREN)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 || len(args) > 2 {
		return nil, p.errorf("one or two dimension arguments")
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	return ast.NewBuiltinCall(builtinNames[nameTok.Kind], args, nameTok.Line), nil
}

// parseVectorLiteral parses `[e, ...]`; rows of a matrix are themselves vector
// literals. Ragged rows are left for the type checker.
func (p *ProgramParser) parseVectorLiteral() (ast.Expression, error) {
	open := p.advance()
	elems, err := p.parseExpressionList(RBRACKET)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return ast.NewVectorLiteral(elems, open.Line), nil
}

// parseExpressionList parses comma separated expressions up to (not including)
// the closing token. An immediately closing token yields an empty list.
func (p *ProgramParser) parseExpressionList(closing TokenKind) ([]ast.Expression, error) {
	list := make([]ast.Expression, 0)
	if p.check(closing) {
		return list, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if _, ok := p.match(COMMA); !ok {
			return list, nil
		}
	}
}

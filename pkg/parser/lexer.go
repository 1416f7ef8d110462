package parser

import (
	"strconv"
)

// Lexer turns source text into tokens. It never aborts: an unrecognised
// character is recorded as a diagnostic and skipped.
type Lexer struct {
	src   []byte
	pos   int
	line  int
	diags []Diagnostic
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Diagnostics returns the lexical errors seen so far.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diags
}

// Tokenize scans src to the end. The returned slice always ends with EOF.
func Tokenize(src []byte) ([]Token, []Diagnostic) {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, lx.Diagnostics()
		}
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; c {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.line++
			l.pos++
		case '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) emit(kind TokenKind, start int, value any) Token {
	return Token{Kind: kind, Literal: string(l.src[start:l.pos]), Value: value, Line: l.line}
}

// Next returns the next token, or EOF once the input is exhausted.
func (l *Lexer) Next() Token {
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			return Token{Kind: EOF, Line: l.line}
		}
		start := l.pos
		c := l.src[l.pos]

		switch {
		case isIdentStart(c):
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			word := string(l.src[start:l.pos])
			if kw, ok := keywords[word]; ok {
				return l.emit(kw, start, nil)
			}
			return l.emit(ID, start, word)
		case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
			return l.number(start)
		case c == '"':
			if tok, ok := l.str(start); ok {
				return tok
			}
			continue
		}

		if tok, ok := l.operator(start); ok {
			return tok
		}

		l.diags = append(l.diags, Diagnostic{Kind: DiagLex, Line: l.line, Found: string(c)})
		l.pos++
	}
}

// number scans INTNUM or FLOATNUM: 12, 1.5, 1., .5, 1e3, 1.5e-2.
func (l *Lexer) number(start int) Token {
	isFloat := false
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.peekByte(0) == '.' && !l.dotStartsOperator() {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		offset := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			offset = 2
		}
		if isDigit(l.peekByte(offset)) {
			isFloat = true
			l.pos += offset
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	text := string(l.src[start:l.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.diags = append(l.diags, Diagnostic{Kind: DiagNumber, Line: l.line, Found: text})
		}
		return l.emit(FLOATNUM, start, v)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.diags = append(l.diags, Diagnostic{Kind: DiagNumber, Line: l.line, Found: text})
	}
	return l.emit(INTNUM, start, v)
}

// dotStartsOperator reports whether the '.' at pos begins an element-wise
// operator rather than a fractional part, so `2.*a` scans as 2 .* a.
func (l *Lexer) dotStartsOperator() bool {
	switch l.peekByte(1) {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

func (l *Lexer) str(start int) (Token, bool) {
	end := l.pos + 1
	for end < len(l.src) && l.src[end] != '"' {
		end++
	}
	if end >= len(l.src) {
		// Unterminated: report the quote and rescan after it.
		l.diags = append(l.diags, Diagnostic{Kind: DiagLex, Line: l.line, Found: `"`})
		l.pos++
		return Token{}, false
	}
	value := string(l.src[l.pos+1 : end])
	for _, ch := range value {
		if ch == '\n' {
			l.line++
		}
	}
	l.pos = end + 1
	return l.emit(STRING, start, value), true
}

var twoCharOperators = map[string]TokenKind{
	"<=": LE,
	">=": GE,
	"!=": NE,
	"==": EQ,
	".+": DOTADD,
	".-": DOTSUB,
	".*": DOTMUL,
	"./": DOTDIV,
	"+=": ADDASSIGN,
	"-=": SUBASSIGN,
	"*=": MULASSIGN,
	"/=": DIVASSIGN,
}

var oneCharOperators = map[byte]TokenKind{
	'=':  ASSIGN,
	'+':  PLUS,
	'-':  MINUS,
	'*':  MULT,
	'/':  DIV,
	'(':  LPAREN,
	')':  RPAREN,
	'[':  LBRACKET,
	']':  RBRACKET,
	'{':  LBRACE,
	'}':  RBRACE,
	':':  COLON,
	'\'': TRANSPOSE,
	',':  COMMA,
	';':  SEMICOLON,
	'<':  LESS,
	'>':  GREATER,
}

func (l *Lexer) operator(start int) (Token, bool) {
	if l.pos+1 < len(l.src) {
		if kind, ok := twoCharOperators[string(l.src[l.pos:l.pos+2])]; ok {
			l.pos += 2
			return l.emit(kind, start, nil), true
		}
	}
	if kind, ok := oneCharOperators[l.src[l.pos]]; ok {
		l.pos++
		return l.emit(kind, start, nil), true
	}
	return Token{}, false
}

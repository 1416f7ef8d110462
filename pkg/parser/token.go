package parser

import "fmt"

// TokenKind identifies a lexical token.
type TokenKind int

const (
	EOF TokenKind = iota

	// Literals & identifiers
	ID
	INTNUM
	FLOATNUM
	STRING

	// Keywords
	IF
	ELSE
	FOR
	WHILE
	BREAK
	CONTINUE
	RETURN
	EYE
	ZEROS
	ONES
	PRINT

	// Operators
	PLUS   // "+"
	MINUS  // "-"
	MULT   // "*"
	DIV    // "/"
	DOTADD // ".+"
	DOTSUB // ".-"
	DOTMUL // ".*"
	DOTDIV // "./"
	ASSIGN // "="
	ADDASSIGN
	SUBASSIGN
	MULASSIGN
	DIVASSIGN
	LESS
	GREATER
	LE
	GE
	NE
	EQ
	TRANSPOSE // "'"

	// Punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COLON
	COMMA
	SEMICOLON
)

var tokenNames = map[TokenKind]string{
	EOF:       "EOF",
	ID:        "ID",
	INTNUM:    "INTNUM",
	FLOATNUM:  "FLOATNUM",
	STRING:    "STRING",
	IF:        "IF",
	ELSE:      "ELSE",
	FOR:       "FOR",
	WHILE:     "WHILE",
	BREAK:     "BREAK",
	CONTINUE:  "CONTINUE",
	RETURN:    "RETURN",
	EYE:       "EYE",
	ZEROS:     "ZEROS",
	ONES:      "ONES",
	PRINT:     "PRINT",
	PLUS:      "+",
	MINUS:     "-",
	MULT:      "*",
	DIV:       "/",
	DOTADD:    "DOTADD",
	DOTSUB:    "DOTSUB",
	DOTMUL:    "DOTMUL",
	DOTDIV:    "DOTDIV",
	ASSIGN:    "=",
	ADDASSIGN: "ADDASSIGN",
	SUBASSIGN: "SUBASSIGN",
	MULASSIGN: "MULASSIGN",
	DIVASSIGN: "DIVASSIGN",
	LESS:      "<",
	GREATER:   ">",
	LE:        "LE",
	GE:        "GE",
	NE:        "NE",
	EQ:        "EQ",
	TRANSPOSE: "'",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	COLON:     ":",
	COMMA:     ",",
	SEMICOLON: ";",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"eye":      EYE,
	"zeros":    ZEROS,
	"ones":     ONES,
	"print":    PRINT,
}

// Token is a lexical token. Value holds the decoded literal for INTNUM (int64),
// FLOATNUM (float64) and STRING (string without quotes).
type Token struct {
	Kind    TokenKind
	Literal string
	Value   any
	Line    int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s('%s')", t.Kind, t.Literal)
}

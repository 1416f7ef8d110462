package parser

import (
	"sort"

	"mlang/interpreter-go/pkg/ast"
)

// ProgramParser turns source text into the program AST.
type ProgramParser struct {
	toks  []Token
	pos   int
	depth int
	diags []Diagnostic
}

// NewProgramParser constructs a parser over an already scanned token stream.
// The stream must end with an EOF token.
func NewProgramParser(toks []Token) *ProgramParser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		line := 0
		if len(toks) > 0 {
			line = toks[len(toks)-1].Line
		}
		toks = append(toks, Token{Kind: EOF, Line: line})
	}
	return &ProgramParser{toks: toks}
}

// ParseProgram scans and parses source. It always returns a tree: statements
// that could not be parsed are replaced by ErrorNode placeholders and reported
// in the diagnostics, ordered by line.
func ParseProgram(source []byte) (*ast.Block, []Diagnostic) {
	toks, lexDiags := Tokenize(source)
	p := NewProgramParser(toks)
	program := p.Program()

	syntax := p.Diagnostics()
	diags := make([]Diagnostic, 0, len(lexDiags)+len(syntax))
	diags = append(diags, lexDiags...)
	diags = append(diags, syntax...)
	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Line < diags[j].Line })
	return program, diags
}

// Program parses the whole token stream.
func (p *ProgramParser) Program() *ast.Block {
	if p.atEnd() {
		return ast.NewBlock(nil, 0)
	}
	line := p.peek().Line
	body := p.statements()
	for !p.atEnd() {
		// A stray '}' at top level: report it and keep going.
		p.record(p.errorf("statement"))
		p.advance()
		body = append(body, p.statements()...)
	}
	return ast.NewBlock(body, line)
}

// Diagnostics returns the syntax errors recorded by Program.
func (p *ProgramParser) Diagnostics() []Diagnostic {
	return p.diags
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *ProgramParser) atEnd() bool { return p.peek().Kind == EOF }

func (p *ProgramParser) peek() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *ProgramParser) advance() Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *ProgramParser) check(kinds ...TokenKind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *ProgramParser) match(kinds ...TokenKind) (Token, bool) {
	if p.check(kinds...) {
		return p.advance(), true
	}
	return Token{}, false
}

func (p *ProgramParser) expect(kind TokenKind, expected string) (Token, error) {
	if tok, ok := p.match(kind); ok {
		return tok, nil
	}
	return Token{}, p.errorf(expected)
}

// errorf builds a syntax diagnostic for the current token.
func (p *ProgramParser) errorf(expected string) *Diagnostic {
	tok := p.peek()
	return &Diagnostic{
		Kind:     DiagSyntax,
		Line:     tok.Line,
		Found:    tok.String(),
		Expected: expected,
		AtEOF:    tok.Kind == EOF,
	}
}

func (p *ProgramParser) record(err error) {
	if d, ok := err.(*Diagnostic); ok {
		p.diags = append(p.diags, *d)
		return
	}
	p.diags = append(p.diags, Diagnostic{Kind: DiagSyntax, Line: p.peek().Line, Found: p.peek().String(), Expected: err.Error()})
}

// synchronize skips to the next statement boundary after an error raised by a
// statement that started at token index start.
func (p *ProgramParser) synchronize(start int) {
	if p.pos == start && !p.atEnd() && !(p.depth > 0 && p.check(RBRACE)) {
		if tok := p.advance(); tok.Kind == SEMICOLON {
			return
		}
	}
	for !p.atEnd() {
		switch p.peek().Kind {
		case SEMICOLON:
			p.advance()
			return
		case RBRACE, LBRACE, IF, WHILE, FOR, BREAK, CONTINUE, RETURN, PRINT:
			return
		}
		p.advance()
	}
}

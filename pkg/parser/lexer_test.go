package parser

import (
	"testing"
)

func tokenKinds(toks []Token) []TokenKind {
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenizeOperatorsAndKeywords(t *testing.T) {
	toks, diags := Tokenize([]byte("if x <= 2 { y .*= 1; } else while for break continue return eye zeros ones print"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []TokenKind{
		IF, ID, LE, INTNUM, LBRACE, ID, DOTMUL, ASSIGN, INTNUM, SEMICOLON, RBRACE,
		ELSE, WHILE, FOR, BREAK, CONTINUE, RETURN, EYE, ZEROS, ONES, PRINT, EOF,
	}
	got := tokenKinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src   string
		kind  TokenKind
		value any
	}{
		{"42", INTNUM, int64(42)},
		{"1.5", FLOATNUM, 1.5},
		{"1.", FLOATNUM, 1.0},
		{".5", FLOATNUM, 0.5},
		{"1e3", FLOATNUM, 1000.0},
		{"2.5E-1", FLOATNUM, 0.25},
	}
	for _, tc := range cases {
		toks, diags := Tokenize([]byte(tc.src))
		if len(diags) != 0 {
			t.Fatalf("%q: unexpected diagnostics %v", tc.src, diags)
		}
		if toks[0].Kind != tc.kind || toks[0].Value != tc.value {
			t.Fatalf("%q: expected %s(%v), got %s(%v)", tc.src, tc.kind, tc.value, toks[0].Kind, toks[0].Value)
		}
		if toks[0].Literal != tc.src {
			t.Fatalf("%q: unexpected literal %q", tc.src, toks[0].Literal)
		}
	}
}

func TestTokenizeDotAfterNumberIsElementWise(t *testing.T) {
	toks, _ := Tokenize([]byte("2.*a"))
	got := tokenKinds(toks)
	want := []TokenKind{INTNUM, DOTMUL, ID, EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTokenizeStringsCommentsAndLines(t *testing.T) {
	toks, diags := Tokenize([]byte("# comment\nprint \"a b\";\n\nx"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if toks[0].Kind != PRINT || toks[0].Line != 2 {
		t.Fatalf("expected PRINT on line 2, got %s on %d", toks[0].Kind, toks[0].Line)
	}
	if toks[1].Kind != STRING || toks[1].Value != "a b" {
		t.Fatalf("expected string a b, got %#v", toks[1])
	}
	if toks[3].Kind != ID || toks[3].Line != 4 {
		t.Fatalf("expected ID on line 4, got %s on %d", toks[3].Kind, toks[3].Line)
	}
}

func TestTokenizeReportsIllegalCharacters(t *testing.T) {
	toks, diags := Tokenize([]byte("a = 1;\nb = @ 2;"))
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if got := diags[0].Error(); got != "Line 2: Illegal character '@'" {
		t.Fatalf("unexpected message %q", got)
	}
	// Scanning continues past the bad character.
	if toks[len(toks)-3].Kind != INTNUM {
		t.Fatalf("expected the literal after '@' to be scanned, got %v", tokenKinds(toks))
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, diags := Tokenize([]byte(`print "abc`))
	if len(diags) != 1 || diags[0].Found != `"` {
		t.Fatalf("expected unterminated string diagnostic, got %v", diags)
	}
}

func TestTokenizeReportsOutOfRangeNumbers(t *testing.T) {
	cases := map[string]string{
		"x = 99999999999999999999;": "Line 1: Number '99999999999999999999' out of range",
		"\nx = 1e999;":               "Line 2: Number '1e999' out of range",
	}
	for src, want := range cases {
		toks, diags := Tokenize([]byte(src))
		if len(diags) != 1 || diags[0].Kind != DiagNumber {
			t.Fatalf("%q: expected one number diagnostic, got %v", src, diags)
		}
		if got := diags[0].Error(); got != want {
			t.Fatalf("%q: unexpected message %q", src, got)
		}
		if toks[len(toks)-2].Kind != SEMICOLON {
			t.Fatalf("%q: scanning should continue after the literal, got %v", src, tokenKinds(toks))
		}
	}
	if _, diags := Tokenize([]byte("x = 9223372036854775807;")); len(diags) != 0 {
		t.Fatalf("largest int should scan cleanly, got %v", diags)
	}
}

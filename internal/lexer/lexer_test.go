package lexer

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/token"
)

func TestNextToken(t *testing.T) {
	input := "set x 5\nset y 10\nx + y"

	tests := []struct {
		expectedLexeme string
		expectedType   token.Type
	}{
		{"set", token.SET},
		{"x", token.IDENT},
		{"5", token.NUMBER},
		{"\n", token.NEWLINE},
		{"set", token.SET},
		{"y", token.IDENT},
		{"10", token.NUMBER},
		{"\n", token.NEWLINE},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"y", token.IDENT},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestWhitespaceOnlyInputIsEOFOnly(t *testing.T) {
	l := New("   \n\t\n   \n")
	tok := l.NextToken()
	if tok.Type != token.EOF {
		t.Fatalf("expected sole token to be EOF, got %s", tok.Type)
	}
}

func TestIndentDedentBalance(t *testing.T) {
	input := "if x\n  y\n  z\nw\n"
	l := New(input)

	indents, dedents := 0, 0
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.INDENT {
			indents++
		}
		if tok.Type == token.DEDENT {
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced indent/dedent: indents=%d dedents=%d", indents, dedents)
	}
}

func TestMixedTabsAndSpacesIndentWidth(t *testing.T) {
	// one tab == 4 columns, so "\t\t" should indent the same as 8 spaces.
	tabInput := "if x\n\t\ty\n"
	spaceInput := "if x\n        y\n"

	collect := func(src string) []token.Type {
		l := New(src)
		var out []token.Type
		for {
			tok := l.NextToken()
			out = append(out, tok.Type)
			if tok.Type == token.EOF {
				break
			}
		}
		return out
	}

	a, b := collect(tabInput), collect(spaceInput)
	if len(a) != len(b) {
		t.Fatalf("tab/space indent token counts differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tab/space indent token streams differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	l := New("température_en_celsius")
	tok := l.NextToken()
	if tok.Type != token.IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	if tok.Lexeme != "température_en_celsius" {
		t.Fatalf("expected single identifier lexeme, got %q", tok.Lexeme)
	}
	if next := l.NextToken(); next.Type != token.EOF {
		t.Fatalf("expected EOF after identifier, got %s (%q)", next.Type, next.Lexeme)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{".5", ".5"},
		{"5.", "5."},
		{"1_000_000", "1000000"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", tt.input, tok.Type)
		}
		if tok.Lexeme != tt.expected {
			t.Fatalf("input %q: expected lexeme %q, got %q", tt.input, tt.expected, tok.Lexeme)
		}
	}
}

func TestNumberInvalidUnderscoresDoNotTokenizeCleanly(t *testing.T) {
	for _, input := range []string{"1__0", "_1"} {
		l := New(input)
		tok := l.NextToken()
		if input == "_1" {
			// leading underscore is a valid identifier start, not a number.
			if tok.Type != token.IDENT {
				t.Fatalf("input %q: expected IDENT, got %s", input, tok.Type)
			}
			continue
		}
		if tok.Type != token.ILLEGAL {
			t.Fatalf("input %q: expected ILLEGAL due to bad underscore placement, got %s", input, tok.Type)
		}
		if !l.InErrorRecovery() {
			t.Fatalf("input %q: expected lexer to enter error recovery", input)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("x + y")
	first := l.Peek(0)
	if first.Type != token.IDENT || first.Lexeme != "x" {
		t.Fatalf("unexpected Peek(0): %+v", first)
	}
	second := l.Peek(1)
	if second.Type != token.PLUS {
		t.Fatalf("unexpected Peek(1): %+v", second)
	}
	// Consuming should yield the same sequence Peek saw.
	if tok := l.NextToken(); tok.Type != token.IDENT {
		t.Fatalf("NextToken after Peek diverged: %+v", tok)
	}
	if tok := l.NextToken(); tok.Type != token.PLUS {
		t.Fatalf("NextToken after Peek diverged: %+v", tok)
	}
}

func TestUnknownCharacterIsSilentlySkipped(t *testing.T) {
	// Unknown single characters are skipped, not treated as an error.
	l := New("x@y")
	first := l.NextToken()
	second := l.NextToken()
	third := l.NextToken()
	if first.Lexeme != "x" || second.Lexeme != "y" {
		t.Fatalf("expected x then y around skipped '@', got %q then %q", first.Lexeme, second.Lexeme)
	}
	if third.Type != token.EOF {
		t.Fatalf("expected EOF, got %s", third.Type)
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unknown character should not record an error, got %v", l.Errors())
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\\d\"e\0f\x"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	expected := "a\nb\tc\\d\"e\x00f\\x"
	if tok.Lexeme != expected {
		t.Fatalf("expected %q, got %q", expected, tok.Lexeme)
	}
}

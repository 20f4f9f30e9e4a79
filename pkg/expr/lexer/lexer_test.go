package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x = 2 + 3.5 * sin(pi) - y / 2 % 3
a ** b == c != d <= e >= f < g > h
!p && q || r & s | t ^ u ~v
cond ? 1 : 0, done`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUMBER, "2"},
		{PLUS, "+"},
		{NUMBER, "3.5"},
		{ASTERISK, "*"},
		{IDENT, "sin"},
		{LPAREN, "("},
		{IDENT, "pi"},
		{RPAREN, ")"},
		{MINUS, "-"},
		{IDENT, "y"},
		{SLASH, "/"},
		{NUMBER, "2"},
		{PERCENT, "%"},
		{NUMBER, "3"},
		{IDENT, "a"},
		{POWER, "**"},
		{IDENT, "b"},
		{EQ, "=="},
		{IDENT, "c"},
		{NOT_EQ, "!="},
		{IDENT, "d"},
		{LTE, "<="},
		{IDENT, "e"},
		{GTE, ">="},
		{IDENT, "f"},
		{LT, "<"},
		{IDENT, "g"},
		{GT, ">"},
		{IDENT, "h"},
		{BANG, "!"},
		{IDENT, "p"},
		{AND, "&&"},
		{IDENT, "q"},
		{OR, "||"},
		{IDENT, "r"},
		{BITAND, "&"},
		{IDENT, "s"},
		{BITOR, "|"},
		{IDENT, "t"},
		{BITXOR, "^"},
		{IDENT, "u"},
		{TILDE, "~"},
		{IDENT, "v"},
		{IDENT, "cond"},
		{QUESTION, "?"},
		{NUMBER, "1"},
		{COLON, ":"},
		{NUMBER, "0"},
		{COMMA, ","},
		{IDENT, "done"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong token type. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1.", "1."},
		{"1e10", "1e10"},
		{"1E10", "1E10"},
		{"2.5e-3", "2.5e-3"},
		{"2.5E+3", "2.5E+3"},
		{"1e5", "1e5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.NextToken()
			if tok.Type != NUMBER {
				t.Fatalf("expected NUMBER, got %q (literal %q)", tok.Type, tok.Literal)
			}
			if tok.Literal != tt.literal {
				t.Errorf("wrong literal. expected=%q, got=%q", tt.literal, tok.Literal)
			}
			if next := l.NextToken(); next.Type != EOF {
				t.Errorf("expected EOF after number, got %q (literal %q)", next.Type, next.Literal)
			}
		})
	}
}

func TestExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	// "2e" with no exponent digits lexes as number 2 then identifier e.
	l := New("2e+x")

	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "2" {
		t.Fatalf("expected NUMBER \"2\", got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "e" {
		t.Fatalf("expected IDENT \"e\", got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != PLUS {
		t.Fatalf("expected PLUS, got %q", tok.Type)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "a +\n  bb * c"

	expected := []struct {
		tokType TokenType
		line    int
		column  int
	}{
		{IDENT, 1, 1},
		{PLUS, 1, 3},
		{IDENT, 2, 3},
		{ASTERISK, 2, 6},
		{IDENT, 2, 8},
		{EOF, 2, 9},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.tokType {
			t.Fatalf("tokens[%d] - wrong type. expected=%q, got=%q", i, want.tokType, tok.Type)
		}
		if tok.Line != want.line || tok.Column != want.column {
			t.Errorf("tokens[%d] (%q) - wrong position. expected=%d:%d, got=%d:%d",
				i, tok.Literal, want.line, want.column, tok.Line, tok.Column)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("2 @ 3")

	if tok := l.NextToken(); tok.Type != NUMBER {
		t.Fatalf("expected NUMBER, got %q", tok.Type)
	}
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if tok.Literal != "@" {
		t.Errorf("expected literal %q, got %q", "@", tok.Literal)
	}
}

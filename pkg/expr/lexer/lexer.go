// Package lexer turns expression source text into a stream of tokens.
//
// The token set covers the gnuplot-style expression grammar: numeric
// literals with optional decimal point and e/E exponent, case-sensitive
// identifiers, and the operator and punctuation characters. Whitespace,
// including newlines, only separates tokens.
package lexer

import "fmt"

// TokenType identifies the kind of a token.
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // x, sin, foo_bar
	NUMBER // 42, 3.14, 1.5e10, .5

	// Operators
	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	POWER    // **
	BANG     // !
	TILDE    // ~
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	EQ       // ==
	NOT_EQ   // !=
	AND      // &&
	OR       // ||
	BITAND   // &
	BITOR    // |
	BITXOR   // ^
	QUESTION // ?
	COLON    // :

	// Delimiters
	COMMA  // ,
	LPAREN // (
	RPAREN // )
)

var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	ASSIGN:   "=",
	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	PERCENT:  "%",
	POWER:    "**",
	BANG:     "!",
	TILDE:    "~",
	LT:       "<",
	GT:       ">",
	LTE:      "<=",
	GTE:      ">=",
	EQ:       "==",
	NOT_EQ:   "!=",
	AND:      "&&",
	OR:       "||",
	BITAND:   "&",
	BITOR:    "|",
	BITXOR:   "^",
	QUESTION: "?",
	COLON:    ":",
	COMMA:    ",",
	LPAREN:   "(",
	RPAREN:   ")",
}

// String returns a readable name for the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit with its 1-based source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Line, t.Column)
}

// Lexer is the lexical analyzer. It is not safe for concurrent use.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number, 1-based
	column       int  // current column number, 1-based
}

// New creates a lexer over the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken scans and returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = EOF
		tok.Literal = ""
		return tok
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = EQ, "=="
		} else {
			tok.Type, tok.Literal = ASSIGN, "="
		}
	case '+':
		tok.Type, tok.Literal = PLUS, "+"
	case '-':
		tok.Type, tok.Literal = MINUS, "-"
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok.Type, tok.Literal = POWER, "**"
		} else {
			tok.Type, tok.Literal = ASTERISK, "*"
		}
	case '/':
		tok.Type, tok.Literal = SLASH, "/"
	case '%':
		tok.Type, tok.Literal = PERCENT, "%"
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = NOT_EQ, "!="
		} else {
			tok.Type, tok.Literal = BANG, "!"
		}
	case '~':
		tok.Type, tok.Literal = TILDE, "~"
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = LTE, "<="
		} else {
			tok.Type, tok.Literal = LT, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = GTE, ">="
		} else {
			tok.Type, tok.Literal = GT, ">"
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok.Type, tok.Literal = AND, "&&"
		} else {
			tok.Type, tok.Literal = BITAND, "&"
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok.Type, tok.Literal = OR, "||"
		} else {
			tok.Type, tok.Literal = BITOR, "|"
		}
	case '^':
		tok.Type, tok.Literal = BITXOR, "^"
	case '?':
		tok.Type, tok.Literal = QUESTION, "?"
	case ':':
		tok.Type, tok.Literal = COLON, ":"
	case ',':
		tok.Type, tok.Literal = COMMA, ","
	case '(':
		tok.Type, tok.Literal = LPAREN, "("
	case ')':
		tok.Type, tok.Literal = RPAREN, ")"
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		}
		tok.Type, tok.Literal = ILLEGAL, string(l.ch)
	default:
		switch {
		case isLetter(l.ch):
			tok.Type = IDENT
			tok.Literal = l.readIdentifier()
			return tok
		case isDigit(l.ch):
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		default:
			tok.Type, tok.Literal = ILLEGAL, string(l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads a case-sensitive identifier: an ASCII letter or
// underscore followed by letters, digits, and underscores.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a numeric literal: digits with an optional decimal point
// and an optional e/E exponent with optional sign. A leading dot is accepted
// ("0.5" and ".5" lex the same).
func (l *Lexer) readNumber() string {
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.exponentHasDigits()) {
			l.readChar() // consume e/E
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.position]
}

// exponentHasDigits checks that a sign after e/E is followed by at least one
// digit, so "2e" or "2e+" in "2e+x" does not swallow the sign.
func (l *Lexer) exponentHasDigits() bool {
	// l.ch is 'e' or 'E' and peek is '+' or '-'; look one past the sign.
	if l.readPosition+1 >= len(l.input) {
		return false
	}
	return isDigit(l.input[l.readPosition+1])
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

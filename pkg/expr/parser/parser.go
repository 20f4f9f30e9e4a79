// Package parser builds ASTs from expression text.
//
// The grammar follows gnuplot's expression language. Binding order,
// loosest first:
//
//	,                      sequencing, left-associative
//	=                      assignment, right-associative
//	?:                     ternary conditional, right-associative
//	|| &&                  logical
//	| ^ &                  bitwise
//	== !=  < <= > >=       equality, relational
//	+ -  * / %             additive, multiplicative
//	- + ! ~                unary prefix
//	**                     power, right-associative, binds tighter than a
//	                       unary minus on its left (-2**2 == -(2**2))
//	literals, variables, calls, parentheses
//
// Parse never panics for malformed input; syntax errors are captured in the
// returned Result. Passing an empty or blank expression is a programmer
// error and panics.
package parser

import (
	"strconv"
	"strings"

	"github.com/goplot/goplot/pkg/expr/ast"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
	"github.com/goplot/goplot/pkg/expr/lexer"
)

// Precedence levels for operators, loosest binding first.
const (
	_ int = iota
	LOWEST
	COMMA_PREC  // ,
	ASSIGN_PREC // =
	TERNARY     // ?:
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x ~x +x
	POWER_PREC  // **
	CALL        // f(x)
)

// precedences maps infix tokens to their precedence.
var precedences = map[lexer.TokenType]int{
	lexer.COMMA:    COMMA_PREC,
	lexer.ASSIGN:   ASSIGN_PREC,
	lexer.QUESTION: TERNARY,
	lexer.OR:       LOGIC_OR,
	lexer.AND:      LOGIC_AND,
	lexer.BITOR:    BIT_OR,
	lexer.BITXOR:   BIT_XOR,
	lexer.BITAND:   BIT_AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.POWER:    POWER_PREC,
	lexer.LPAREN:   CALL,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:     ast.Add,
	lexer.MINUS:    ast.Subtract,
	lexer.ASTERISK: ast.Multiply,
	lexer.SLASH:    ast.Divide,
	lexer.PERCENT:  ast.Modulo,
	lexer.POWER:    ast.Power,
	lexer.LT:       ast.Less,
	lexer.LTE:      ast.LessEqual,
	lexer.GT:       ast.Greater,
	lexer.GTE:      ast.GreaterEqual,
	lexer.EQ:       ast.Equal,
	lexer.NOT_EQ:   ast.NotEqual,
	lexer.AND:      ast.LogicalAnd,
	lexer.OR:       ast.LogicalOr,
	lexer.BITAND:   ast.BitwiseAnd,
	lexer.BITOR:    ast.BitwiseOr,
	lexer.BITXOR:   ast.BitwiseXor,
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS: ast.Negate,
	lexer.PLUS:  ast.UnaryPlus,
	lexer.BANG:  ast.LogicalNot,
	lexer.TILDE: ast.BitwiseNot,
}

// Result is the outcome of parsing: either an AST root or a structured
// syntax error.
type Result struct {
	root ast.Expression
	err  *perrors.Error
}

// IsSuccess reports whether parsing produced an AST.
func (r Result) IsSuccess() bool { return r.err == nil }

// AST returns the parsed expression, or nil if parsing failed.
func (r Result) AST() ast.Expression { return r.root }

// Err returns the syntax error, or nil if parsing succeeded.
func (r Result) Err() *perrors.Error { return r.err }

// Parse parses an expression into an AST. Malformed input is reported
// through the failure branch of the Result, never by panicking. An empty or
// blank expression is a contract violation and panics.
func Parse(input string) Result {
	if strings.TrimSpace(input) == "" {
		panic("parser: expression must not be empty")
	}

	p := newParser(input)
	root := p.parseExpression(LOWEST)

	if len(p.errors) == 0 && p.peekToken.Type != lexer.EOF {
		p.addError(p.peekToken, "unexpected token '%s'", p.peekToken.Literal)
	}
	if len(p.errors) > 0 {
		return Result{err: p.errors[0]}
	}
	return Result{root: root}
}

// ParseExpr is the fail-fast entry point: it parses the expression and
// returns the syntax error directly instead of a Result.
func ParseExpr(input string) (ast.Expression, error) {
	result := Parse(input)
	if !result.IsSuccess() {
		return nil, result.Err()
	}
	return result.AST(), nil
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type parser struct {
	l     *lexer.Lexer
	input string

	errors []*perrors.Error

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

func newParser(input string) *parser {
	p := &parser{
		l:     lexer.New(input),
		input: input,
	}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.NUMBER: p.parseNumberLiteral,
		lexer.IDENT:  p.parseVariable,
		lexer.MINUS:  p.parsePrefixExpression,
		lexer.PLUS:   p.parsePrefixExpression,
		lexer.BANG:   p.parsePrefixExpression,
		lexer.TILDE:  p.parsePrefixExpression,
		lexer.LPAREN: p.parseGroupedExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseInfixExpression,
		lexer.MINUS:    p.parseInfixExpression,
		lexer.ASTERISK: p.parseInfixExpression,
		lexer.SLASH:    p.parseInfixExpression,
		lexer.PERCENT:  p.parseInfixExpression,
		lexer.POWER:    p.parsePowerExpression,
		lexer.LT:       p.parseInfixExpression,
		lexer.LTE:      p.parseInfixExpression,
		lexer.GT:       p.parseInfixExpression,
		lexer.GTE:      p.parseInfixExpression,
		lexer.EQ:       p.parseInfixExpression,
		lexer.NOT_EQ:   p.parseInfixExpression,
		lexer.AND:      p.parseInfixExpression,
		lexer.OR:       p.parseInfixExpression,
		lexer.BITAND:   p.parseInfixExpression,
		lexer.BITOR:    p.parseInfixExpression,
		lexer.BITXOR:   p.parseInfixExpression,
		lexer.QUESTION: p.parseTernaryExpression,
		lexer.ASSIGN:   p.parseAssignmentExpression,
		lexer.COMMA:    p.parseCommaExpression,
		lexer.LPAREN:   p.parseCallExpression,
	}

	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *parser) addError(tok lexer.Token, format string, args ...any) *perrors.Error {
	err := perrors.NewSyntax(tok.Line, tok.Column, format, args...)
	err.Expression = p.input
	p.errors = append(p.errors, err)
	return err
}

func (p *parser) expectPeek(t lexer.TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	if p.peekToken.Type == lexer.EOF {
		err := p.addError(p.peekToken, "expected '%s' but reached end of expression", t)
		err.Suggestion = "the expression appears to be incomplete"
	} else {
		p.addError(p.peekToken, "expected '%s' but found '%s'", t, p.peekToken.Literal)
	}
	return false
}

func (p *parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *parser) noPrefixParseFnError(tok lexer.Token) {
	switch tok.Type {
	case lexer.EOF:
		err := p.addError(tok, "unexpected end of expression")
		err.Suggestion = "the expression appears to be incomplete"
	case lexer.ILLEGAL:
		err := p.addError(tok, "illegal character '%s'", tok.Literal)
		err.Suggestion = "remove the invalid character"
	default:
		p.addError(tok, "unexpected token '%s'", tok.Literal)
	}
}

func (p *parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as a number", p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *parser) parseVariable() ast.Expression {
	return &ast.Variable{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	op := unaryOps[tok.Type]

	p.nextToken()
	// Power binds tighter than the prefix operators, so the operand of
	// -2**2 is the whole power expression: -(2**2).
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.UnaryOperation{Token: tok, Operator: op, Operand: operand}
}

func (p *parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := binaryOps[tok.Type]
	precedence := precedences[tok.Type]

	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BinaryOperation{Token: tok, Operator: op, Left: left, Right: right}
}

// parsePowerExpression parses ** right-associatively: 2**3**2 == 2**(3**2).
func (p *parser) parsePowerExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	p.nextToken()
	right := p.parseExpression(POWER_PREC - 1)
	if right == nil {
		return nil
	}
	return &ast.BinaryOperation{Token: tok, Operator: ast.Power, Left: left, Right: right}
}

func (p *parser) parseTernaryExpression(condition ast.Expression) ast.Expression {
	tok := p.curToken

	p.nextToken()
	trueExpr := p.parseExpression(TERNARY - 1)
	if trueExpr == nil {
		return nil
	}

	if !p.expectPeek(lexer.COLON) {
		return nil
	}

	p.nextToken()
	falseExpr := p.parseExpression(TERNARY - 1)
	if falseExpr == nil {
		return nil
	}

	return &ast.TernaryConditional{
		Token:     tok,
		Condition: condition,
		TrueExpr:  trueExpr,
		FalseExpr: falseExpr,
	}
}

func (p *parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	target, ok := left.(*ast.Variable)
	if !ok {
		err := p.addError(p.curToken, "invalid assignment target")
		err.Suggestion = "only a variable name can appear on the left of '='"
		return nil
	}

	p.nextToken()
	// Right-associative: x = y = 5 assigns 5 to y, then to x.
	value := p.parseExpression(ASSIGN_PREC - 1)
	if value == nil {
		return nil
	}
	return &ast.AssignmentExpression{Token: target.Token, Name: target.Name, Value: value}
}

func (p *parser) parseCommaExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	p.nextToken()
	right := p.parseExpression(COMMA_PREC)
	if right == nil {
		return nil
	}
	return &ast.CommaExpression{Token: tok, Left: left, Right: right}
}

func (p *parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *parser) parseCallExpression(fn ast.Expression) ast.Expression {
	name, ok := fn.(*ast.Variable)
	if !ok {
		err := p.addError(p.curToken, "only a function name can be called")
		err.Suggestion = "write calls as name(arguments)"
		return nil
	}

	call := &ast.FunctionCall{Token: name.Token, Name: name.Name}

	if p.peekToken.Type == lexer.RPAREN {
		p.nextToken()
		return call
	}

	// Arguments are comma-separated; a comma inside an argument must be
	// parenthesized. Assignments are permitted as arguments.
	p.nextToken()
	arg := p.parseExpression(COMMA_PREC)
	if arg == nil {
		return nil
	}
	call.Arguments = append(call.Arguments, arg)

	for p.peekToken.Type == lexer.COMMA {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(COMMA_PREC)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return call
}

// Package ast defines the node types produced by the expression parser.
//
// The node set is closed: literals, variable references, unary and binary
// operations, function calls, ternary conditionals, assignment, and comma
// sequencing. Nodes are immutable once built, form a tree (never a cycle),
// and carry the position of their leading token for diagnostics. String
// renders the fully parenthesized form; re-parsing that form yields an
// expression with the same value.
package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goplot/goplot/pkg/expr/lexer"
)

// Expression is the interface implemented by every node.
type Expression interface {
	// TokenLiteral returns the literal text of the node's leading token.
	TokenLiteral() string
	// String renders the expression in fully parenthesized form.
	String() string
	// Pos returns the 1-based line and column of the node's leading token.
	Pos() (line, column int)
	expressionNode()
}

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulo
	Power
	Less
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
	LogicalAnd
	LogicalOr
	BitwiseAnd
	BitwiseOr
	BitwiseXor
)

var binarySymbols = map[BinaryOp]string{
	Add:          "+",
	Subtract:     "-",
	Multiply:     "*",
	Divide:       "/",
	Modulo:       "%",
	Power:        "**",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
	LogicalAnd:   "&&",
	LogicalOr:    "||",
	BitwiseAnd:   "&",
	BitwiseOr:    "|",
	BitwiseXor:   "^",
}

// Symbol returns the operator's source text.
func (op BinaryOp) Symbol() string { return binarySymbols[op] }

func (op BinaryOp) String() string { return op.Symbol() }

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	Negate UnaryOp = iota
	UnaryPlus
	LogicalNot
	BitwiseNot
)

var unarySymbols = map[UnaryOp]string{
	Negate:     "-",
	UnaryPlus:  "+",
	LogicalNot: "!",
	BitwiseNot: "~",
}

// Symbol returns the operator's source text.
func (op UnaryOp) Symbol() string { return unarySymbols[op] }

func (op UnaryOp) String() string { return op.Symbol() }

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() (int, int)      { return nl.Token.Line, nl.Token.Column }
func (nl *NumberLiteral) String() string {
	return strconv.FormatFloat(nl.Value, 'g', -1, 64)
}

// Variable is a reference resolved against the context at evaluation time.
type Variable struct {
	Token lexer.Token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Pos() (int, int)      { return v.Token.Line, v.Token.Column }
func (v *Variable) String() string       { return v.Name }

// UnaryOperation applies a prefix operator to one operand.
type UnaryOperation struct {
	Token    lexer.Token
	Operator UnaryOp
	Operand  Expression
}

func (uo *UnaryOperation) expressionNode()      {}
func (uo *UnaryOperation) TokenLiteral() string { return uo.Token.Literal }
func (uo *UnaryOperation) Pos() (int, int)      { return uo.Token.Line, uo.Token.Column }
func (uo *UnaryOperation) String() string {
	return fmt.Sprintf("(%s%s)", uo.Operator.Symbol(), uo.Operand)
}

// BinaryOperation applies an infix operator to two operands.
type BinaryOperation struct {
	Token    lexer.Token
	Operator BinaryOp
	Left     Expression
	Right    Expression
}

func (bo *BinaryOperation) expressionNode()      {}
func (bo *BinaryOperation) TokenLiteral() string { return bo.Token.Literal }
func (bo *BinaryOperation) Pos() (int, int)      { return bo.Token.Line, bo.Token.Column }
func (bo *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", bo.Left, bo.Operator.Symbol(), bo.Right)
}

// FunctionCall invokes a named function with ordered arguments.
type FunctionCall struct {
	Token     lexer.Token // the function name token
	Name      string
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) Pos() (int, int)      { return fc.Token.Line, fc.Token.Column }
func (fc *FunctionCall) String() string {
	var out bytes.Buffer
	out.WriteString(fc.Name)
	out.WriteString("(")
	for i, arg := range fc.Arguments {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(arg.String())
	}
	out.WriteString(")")
	return out.String()
}

// TernaryConditional selects one of two branches on a condition. Only the
// selected branch is evaluated.
type TernaryConditional struct {
	Token     lexer.Token // the '?' token
	Condition Expression
	TrueExpr  Expression
	FalseExpr Expression
}

func (tc *TernaryConditional) expressionNode()      {}
func (tc *TernaryConditional) TokenLiteral() string { return tc.Token.Literal }
func (tc *TernaryConditional) Pos() (int, int)      { return tc.Token.Line, tc.Token.Column }
func (tc *TernaryConditional) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", tc.Condition, tc.TrueExpr, tc.FalseExpr)
}

// AssignmentExpression stores a value under a variable name and yields the
// stored value. Assignment is right-associative.
type AssignmentExpression struct {
	Token lexer.Token // the variable name token
	Name  string
	Value Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) Pos() (int, int)      { return ae.Token.Line, ae.Token.Column }
func (ae *AssignmentExpression) String() string {
	return fmt.Sprintf("(%s = %s)", ae.Name, ae.Value)
}

// CommaExpression evaluates the left expression for its side effects, then
// evaluates and yields the right. Sequencing is left-associative.
type CommaExpression struct {
	Token lexer.Token // the ',' token
	Left  Expression
	Right Expression
}

func (ce *CommaExpression) expressionNode()      {}
func (ce *CommaExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CommaExpression) Pos() (int, int)      { return ce.Token.Line, ce.Token.Column }
func (ce *CommaExpression) String() string {
	return fmt.Sprintf("(%s, %s)", ce.Left, ce.Right)
}

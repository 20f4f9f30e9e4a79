package evaluator

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/goplot/goplot/pkg/expr/ast"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
	"github.com/goplot/goplot/pkg/expr/parser"
)

// Evaluator walks an AST and computes a float64 result against a Context.
//
// Numeric domain violations (division by zero, log of a negative, and so on)
// are not errors: they produce NaN or Infinity per IEEE-754 and flow through
// the tree silently. Only undefined references and argument-count mismatches
// fail.
type Evaluator struct {
	ctx *Context
}

// New creates an evaluator over the given context. A nil context gets a
// fresh one with the standard library registered.
func New(ctx *Context) *Evaluator {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Evaluator{ctx: ctx}
}

// Context returns the evaluation context.
func (e *Evaluator) Context() *Context { return e.ctx }

// Evaluate computes the value of the expression. Passing nil is a contract
// violation and panics.
func (e *Evaluator) Evaluate(node ast.Expression) (float64, error) {
	if node == nil {
		panic("evaluator: cannot evaluate nil expression")
	}
	return e.eval(node)
}

// EvalString parses and evaluates an expression in one step.
func EvalString(input string, ctx *Context) (float64, error) {
	root, err := parser.ParseExpr(input)
	if err != nil {
		return 0, err
	}
	return New(ctx).Evaluate(root)
}

func (e *Evaluator) eval(node ast.Expression) (float64, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return n.Value, nil

	case *ast.Variable:
		value, err := e.ctx.GetVariable(n.Name)
		if err != nil {
			return 0, locate(err, n)
		}
		return value, nil

	case *ast.UnaryOperation:
		return e.evalUnary(n)

	case *ast.BinaryOperation:
		return e.evalBinary(n)

	case *ast.FunctionCall:
		return e.evalCall(n)

	case *ast.TernaryConditional:
		condition, err := e.eval(n.Condition)
		if err != nil {
			return 0, err
		}
		// Nonzero selects the true branch; only the selected branch is
		// evaluated.
		if condition != 0.0 {
			return e.eval(n.TrueExpr)
		}
		return e.eval(n.FalseExpr)

	case *ast.AssignmentExpression:
		value, err := e.eval(n.Value)
		if err != nil {
			return 0, err
		}
		e.ctx.SetVariable(n.Name, value)
		return value, nil

	case *ast.CommaExpression:
		if _, err := e.eval(n.Left); err != nil {
			return 0, err
		}
		return e.eval(n.Right)

	default:
		panic(fmt.Sprintf("evaluator: unexpected node type %T", node))
	}
}

func (e *Evaluator) evalUnary(n *ast.UnaryOperation) (float64, error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return 0, err
	}

	switch n.Operator {
	case ast.Negate:
		return -operand, nil
	case ast.UnaryPlus:
		return operand, nil
	case ast.LogicalNot:
		return boolToFloat(operand == 0.0), nil
	case ast.BitwiseNot:
		return float64(^toInt64(operand)), nil
	default:
		panic(fmt.Sprintf("evaluator: unexpected unary operator %v", n.Operator))
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryOperation) (float64, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return 0, err
	}

	// Logical operators short-circuit: the right operand is not evaluated
	// when the left already determines the result.
	switch n.Operator {
	case ast.LogicalAnd:
		if left == 0.0 {
			return 0.0, nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return 0, err
		}
		return boolToFloat(right != 0.0), nil
	case ast.LogicalOr:
		if left != 0.0 {
			return 1.0, nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return 0, err
		}
		return boolToFloat(right != 0.0), nil
	}

	right, err := e.eval(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Operator {
	// Arithmetic. Division and modulo by zero follow IEEE-754 and
	// propagate Inf/NaN without special-casing.
	case ast.Add:
		return left + right, nil
	case ast.Subtract:
		return left - right, nil
	case ast.Multiply:
		return left * right, nil
	case ast.Divide:
		return left / right, nil
	case ast.Modulo:
		return math.Mod(left, right), nil
	case ast.Power:
		return math.Pow(left, right), nil

	// Comparisons yield 1.0 for true, 0.0 for false.
	case ast.Less:
		return boolToFloat(left < right), nil
	case ast.LessEqual:
		return boolToFloat(left <= right), nil
	case ast.Greater:
		return boolToFloat(left > right), nil
	case ast.GreaterEqual:
		return boolToFloat(left >= right), nil
	case ast.Equal:
		return boolToFloat(left == right), nil
	case ast.NotEqual:
		return boolToFloat(left != right), nil

	// Bitwise operators truncate to 64-bit integers and convert back.
	case ast.BitwiseAnd:
		return float64(toInt64(left) & toInt64(right)), nil
	case ast.BitwiseOr:
		return float64(toInt64(left) | toInt64(right)), nil
	case ast.BitwiseXor:
		return float64(toInt64(left) ^ toInt64(right)), nil

	default:
		panic(fmt.Sprintf("evaluator: unexpected binary operator %v", n.Operator))
	}
}

func (e *Evaluator) evalCall(n *ast.FunctionCall) (float64, error) {
	// User-defined functions shadow the built-in library.
	if uf := e.ctx.GetUserFunction(n.Name); uf != nil {
		return e.evalUserFunction(uf, n)
	}

	fn, err := e.ctx.GetFunction(n.Name)
	if err != nil {
		return 0, locate(err, n)
	}

	args := make([]float64, len(n.Arguments))
	for i, arg := range n.Arguments {
		value, err := e.eval(arg)
		if err != nil {
			return 0, err
		}
		args[i] = value
	}

	value, err := fn.Call(args)
	if err != nil {
		return 0, locate(err, n)
	}
	return value, nil
}

// evalUserFunction binds arguments to the function's parameters for the
// duration of the call, restoring any shadowed variables afterwards.
func (e *Evaluator) evalUserFunction(uf *UserFunction, n *ast.FunctionCall) (float64, error) {
	if len(n.Arguments) != len(uf.Params) {
		err := perrors.NewInvalidArgument(
			"wrong number of arguments to %s: expected %d, got %d",
			uf.Name, len(uf.Params), len(n.Arguments))
		return 0, locate(err, n)
	}

	args := make([]float64, len(n.Arguments))
	for i, arg := range n.Arguments {
		value, err := e.eval(arg)
		if err != nil {
			return 0, err
		}
		args[i] = value
	}

	saved := make(map[string]float64)
	shadowed := make(map[string]bool)
	for _, param := range uf.Params {
		if value, ok := e.ctx.variables[param]; ok {
			saved[param] = value
			shadowed[param] = true
		}
	}
	for i, param := range uf.Params {
		e.ctx.SetVariable(param, args[i])
	}
	defer func() {
		for _, param := range uf.Params {
			if shadowed[param] {
				e.ctx.SetVariable(param, saved[param])
			} else {
				e.ctx.RemoveVariable(param)
			}
		}
	}()

	return e.eval(uf.Body)
}

// locate attaches the node's source position to an error that does not
// already carry one.
func locate(err error, node ast.Expression) error {
	var ee *perrors.Error
	if stderrors.As(err, &ee) {
		line, column := node.Pos()
		return ee.WithLocation(line, column)
	}
	return err
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// toInt64 truncates a double to a 64-bit integer with saturation: NaN becomes
// 0 and values beyond the int64 range clamp to its ends. Go leaves the plain
// conversion unspecified for those inputs, so the bitwise operators and seed
// handling pin it down.
func toInt64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	}
	return int64(x)
}

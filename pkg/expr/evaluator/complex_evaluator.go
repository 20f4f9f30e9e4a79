package evaluator

import (
	"fmt"
	"math"

	"github.com/goplot/goplot/pkg/expr/ast"
	"github.com/goplot/goplot/pkg/expr/complexnum"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
)

// ComplexEvaluator walks an AST computing complex values. It shares the
// Context with the real evaluator: complex-aware functions are consulted
// first, and calls fall back to the real library on the real parts of the
// arguments.
//
// Comparison operators compare real parts, except == and != which compare
// both parts exactly. Assignment stores the real part, since the variable
// map holds doubles.
type ComplexEvaluator struct {
	ctx *Context
}

// NewComplex creates a complex evaluator over the given context. A nil
// context gets a fresh one.
func NewComplex(ctx *Context) *ComplexEvaluator {
	if ctx == nil {
		ctx = NewContext()
	}
	return &ComplexEvaluator{ctx: ctx}
}

// Context returns the evaluation context.
func (e *ComplexEvaluator) Context() *Context { return e.ctx }

// Evaluate computes the complex value of the expression. Passing nil is a
// contract violation and panics.
func (e *ComplexEvaluator) Evaluate(node ast.Expression) (complexnum.Complex, error) {
	if node == nil {
		panic("evaluator: cannot evaluate nil expression")
	}
	return e.eval(node)
}

// EvaluateReal computes the expression and returns the real part of the
// result.
func (e *ComplexEvaluator) EvaluateReal(node ast.Expression) (float64, error) {
	result, err := e.Evaluate(node)
	if err != nil {
		return 0, err
	}
	return result.Real(), nil
}

func (e *ComplexEvaluator) eval(node ast.Expression) (complexnum.Complex, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return complexnum.FromReal(n.Value), nil

	case *ast.Variable:
		value, err := e.ctx.GetVariable(n.Name)
		if err != nil {
			return complexnum.Zero, locate(err, n)
		}
		return complexnum.FromReal(value), nil

	case *ast.UnaryOperation:
		return e.evalUnary(n)

	case *ast.BinaryOperation:
		return e.evalBinary(n)

	case *ast.FunctionCall:
		return e.evalCall(n)

	case *ast.TernaryConditional:
		condition, err := e.eval(n.Condition)
		if err != nil {
			return complexnum.Zero, err
		}
		if condition.Real() != 0.0 || condition.Imag() != 0.0 {
			return e.eval(n.TrueExpr)
		}
		return e.eval(n.FalseExpr)

	case *ast.AssignmentExpression:
		value, err := e.eval(n.Value)
		if err != nil {
			return complexnum.Zero, err
		}
		e.ctx.SetVariable(n.Name, value.Real())
		return value, nil

	case *ast.CommaExpression:
		if _, err := e.eval(n.Left); err != nil {
			return complexnum.Zero, err
		}
		return e.eval(n.Right)

	default:
		panic(fmt.Sprintf("evaluator: unexpected node type %T", node))
	}
}

func (e *ComplexEvaluator) evalUnary(n *ast.UnaryOperation) (complexnum.Complex, error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return complexnum.Zero, err
	}

	switch n.Operator {
	case ast.Negate:
		return operand.Neg(), nil
	case ast.UnaryPlus:
		return operand, nil
	case ast.LogicalNot:
		isZero := operand.Real() == 0.0 && operand.Imag() == 0.0
		return complexnum.FromReal(boolToFloat(isZero)), nil
	case ast.BitwiseNot:
		return complexnum.FromReal(float64(^toInt64(operand.Real()))), nil
	default:
		panic(fmt.Sprintf("evaluator: unexpected unary operator %v", n.Operator))
	}
}

func (e *ComplexEvaluator) evalBinary(n *ast.BinaryOperation) (complexnum.Complex, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return complexnum.Zero, err
	}

	switch n.Operator {
	case ast.LogicalAnd:
		if left.Real() == 0.0 {
			return complexnum.Zero, nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return complexnum.Zero, err
		}
		return complexnum.FromReal(boolToFloat(right.Real() != 0.0)), nil
	case ast.LogicalOr:
		if left.Real() != 0.0 {
			return complexnum.One, nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return complexnum.Zero, err
		}
		return complexnum.FromReal(boolToFloat(right.Real() != 0.0)), nil
	}

	right, err := e.eval(n.Right)
	if err != nil {
		return complexnum.Zero, err
	}

	switch n.Operator {
	case ast.Add:
		return left.Add(right), nil
	case ast.Subtract:
		return left.Sub(right), nil
	case ast.Multiply:
		return left.Mul(right), nil
	case ast.Divide:
		// Div yields NaN + NaNi on a zero divisor.
		return left.Div(right), nil
	case ast.Modulo:
		// Modulo only makes sense for real parts.
		return complexnum.FromReal(math.Mod(left.Real(), right.Real())), nil
	case ast.Power:
		return complexnum.Pow(left, right), nil

	case ast.Less:
		return complexnum.FromReal(boolToFloat(left.Real() < right.Real())), nil
	case ast.LessEqual:
		return complexnum.FromReal(boolToFloat(left.Real() <= right.Real())), nil
	case ast.Greater:
		return complexnum.FromReal(boolToFloat(left.Real() > right.Real())), nil
	case ast.GreaterEqual:
		return complexnum.FromReal(boolToFloat(left.Real() >= right.Real())), nil
	case ast.Equal:
		return complexnum.FromReal(boolToFloat(left.Equal(right))), nil
	case ast.NotEqual:
		return complexnum.FromReal(boolToFloat(!left.Equal(right))), nil

	case ast.BitwiseAnd:
		return complexnum.FromReal(float64(toInt64(left.Real()) & toInt64(right.Real()))), nil
	case ast.BitwiseOr:
		return complexnum.FromReal(float64(toInt64(left.Real()) | toInt64(right.Real()))), nil
	case ast.BitwiseXor:
		return complexnum.FromReal(float64(toInt64(left.Real()) ^ toInt64(right.Real()))), nil

	default:
		panic(fmt.Sprintf("evaluator: unexpected binary operator %v", n.Operator))
	}
}

func (e *ComplexEvaluator) evalCall(n *ast.FunctionCall) (complexnum.Complex, error) {
	if uf := e.ctx.GetUserFunction(n.Name); uf != nil {
		return e.evalUserFunction(uf, n)
	}

	args := make([]complexnum.Complex, len(n.Arguments))
	for i, arg := range n.Arguments {
		value, err := e.eval(arg)
		if err != nil {
			return complexnum.Zero, err
		}
		args[i] = value
	}

	if fn := e.ctx.GetComplexFunction(n.Name); fn != nil {
		value, err := fn.Call(args)
		if err != nil {
			return complexnum.Zero, locate(err, n)
		}
		return value, nil
	}

	// Fall back to the real-valued library on the real parts.
	fn, err := e.ctx.GetFunction(n.Name)
	if err != nil {
		return complexnum.Zero, locate(err, n)
	}
	realArgs := make([]float64, len(args))
	for i, arg := range args {
		realArgs[i] = arg.Real()
	}
	value, err := fn.Call(realArgs)
	if err != nil {
		return complexnum.Zero, locate(err, n)
	}
	return complexnum.FromReal(value), nil
}

func (e *ComplexEvaluator) evalUserFunction(uf *UserFunction, n *ast.FunctionCall) (complexnum.Complex, error) {
	if len(n.Arguments) != len(uf.Params) {
		err := perrors.NewInvalidArgument(
			"wrong number of arguments to %s: expected %d, got %d",
			uf.Name, len(uf.Params), len(n.Arguments))
		return complexnum.Zero, locate(err, n)
	}

	args := make([]complexnum.Complex, len(n.Arguments))
	for i, arg := range n.Arguments {
		value, err := e.eval(arg)
		if err != nil {
			return complexnum.Zero, err
		}
		args[i] = value
	}

	// Parameters are stored in the variable map, which holds doubles, so
	// arguments are bound by their real parts.
	saved := make(map[string]float64)
	shadowed := make(map[string]bool)
	for _, param := range uf.Params {
		if value, ok := e.ctx.variables[param]; ok {
			saved[param] = value
			shadowed[param] = true
		}
	}
	for i, param := range uf.Params {
		e.ctx.SetVariable(param, args[i].Real())
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

package evaluator

import (
	"github.com/goplot/goplot/pkg/expr/complexnum"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
)

// Function is a named real-valued callable with arity metadata. The argument
// count is validated before the implementation runs, so implementations can
// index args freely.
type Function struct {
	name     string
	minArgs  int
	variadic bool
	fn       func(args []float64) (float64, error)
}

// NewFunction creates a function with an exact argument count.
func NewFunction(name string, arity int, fn func(args []float64) (float64, error)) *Function {
	return &Function{name: name, minArgs: arity, fn: fn}
}

// NewVariadicFunction creates a function accepting minArgs or more arguments.
func NewVariadicFunction(name string, minArgs int, fn func(args []float64) (float64, error)) *Function {
	return &Function{name: name, minArgs: minArgs, variadic: true, fn: fn}
}

// Name returns the function's registered name.
func (f *Function) Name() string { return f.name }

// Call validates the argument count and invokes the implementation.
func (f *Function) Call(args []float64) (float64, error) {
	if err := checkArity(f.name, f.minArgs, f.variadic, len(args)); err != nil {
		return 0, err
	}
	return f.fn(args)
}

// ComplexFunction is the complex-domain counterpart of Function, consulted
// by the complex evaluator before falling back to the real library.
type ComplexFunction struct {
	name    string
	minArgs int
	fn      func(args []complexnum.Complex) (complexnum.Complex, error)
}

// NewComplexFunction creates a complex function with an exact argument count.
func NewComplexFunction(name string, arity int, fn func(args []complexnum.Complex) (complexnum.Complex, error)) *ComplexFunction {
	return &ComplexFunction{name: name, minArgs: arity, fn: fn}
}

// Name returns the function's registered name.
func (f *ComplexFunction) Name() string { return f.name }

// Call validates the argument count and invokes the implementation.
func (f *ComplexFunction) Call(args []complexnum.Complex) (complexnum.Complex, error) {
	if err := checkArity(f.name, f.minArgs, false, len(args)); err != nil {
		return complexnum.Zero, err
	}
	return f.fn(args)
}

func checkArity(name string, min int, variadic bool, got int) *perrors.Error {
	if variadic {
		if got < min {
			return perrors.NewInvalidArgument(
				"wrong number of arguments to %s: expected at least %d, got %d", name, min, got)
		}
		return nil
	}
	if got != min {
		return perrors.NewInvalidArgument(
			"wrong number of arguments to %s: expected %d, got %d", name, min, got)
	}
	return nil
}

package evaluator

import "github.com/goplot/goplot/pkg/expr/complexnum"

// registerComplexFunctions installs the complex-aware overrides used by the
// complex evaluator. Names not listed here fall back to the real library on
// the real parts of the arguments; these are the functions where that would
// lose the imaginary part, most notably sqrt(-1).
func (c *Context) registerComplexFunctions() {
	unary := func(name string, fn func(complexnum.Complex) complexnum.Complex) {
		c.RegisterComplexFunction(NewComplexFunction(name, 1, func(args []complexnum.Complex) (complexnum.Complex, error) {
			return fn(args[0]), nil
		}))
	}

	unary("sqrt", complexnum.Sqrt)
	unary("exp", complexnum.Exp)
	unary("log", complexnum.Log)
	unary("sin", complexnum.Sin)
	unary("cos", complexnum.Cos)
	unary("tan", complexnum.Tan)
	unary("atan", complexnum.Atan)

	unary("abs", func(z complexnum.Complex) complexnum.Complex {
		return complexnum.FromReal(z.Abs())
	})
	unary("arg", func(z complexnum.Complex) complexnum.Complex {
		return complexnum.FromReal(z.Arg())
	})
	unary("real", func(z complexnum.Complex) complexnum.Complex {
		return complexnum.FromReal(z.Real())
	})
	unary("imag", func(z complexnum.Complex) complexnum.Complex {
		return complexnum.FromReal(z.Imag())
	})
	unary("conj", complexnum.Complex.Conj)
}

package evaluator

import "math"

// registerMathFunctions installs the elementary functions: trigonometry,
// hyperbolics, exponentials, and the rounding family.
func (c *Context) registerMathFunctions() {
	unary := func(name string, fn func(float64) float64) {
		c.RegisterFunction(NewFunction(name, 1, func(args []float64) (float64, error) {
			return fn(args[0]), nil
		}))
	}

	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("sinh", math.Sinh)
	unary("cosh", math.Cosh)
	unary("tanh", math.Tanh)
	unary("exp", math.Exp)
	unary("log", math.Log)
	unary("log10", math.Log10)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("abs", math.Abs)
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)

	c.RegisterFunction(NewFunction("atan2", 2, func(args []float64) (float64, error) {
		return math.Atan2(args[0], args[1]), nil
	}))
	// pow is the function form of the ** operator.
	c.RegisterFunction(NewFunction("pow", 2, func(args []float64) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	}))

	// Half-way cases round towards positive infinity.
	unary("round", func(x float64) float64 { return math.Floor(x + 0.5) })

	unary("sgn", func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})

	c.RegisterFunction(NewVariadicFunction("min", 2, func(args []float64) (float64, error) {
		result := args[0]
		for _, arg := range args[1:] {
			result = math.Min(result, arg)
		}
		return result, nil
	}))
	c.RegisterFunction(NewVariadicFunction("max", 2, func(args []float64) (float64, error) {
		result := args[0]
		for _, arg := range args[1:] {
			result = math.Max(result, arg)
		}
		return result, nil
	}))

	// On the real line, real is the identity and imag is constantly zero.
	// The complex evaluator overrides both.
	unary("real", func(x float64) float64 { return x })
	unary("imag", func(x float64) float64 { return 0 })
}

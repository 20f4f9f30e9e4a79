package evaluator

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// registerSpecialFunctions installs the gamma and beta families and the
// error functions. The incomplete gamma and beta integrals come from gonum.
func (c *Context) registerSpecialFunctions() {
	c.RegisterFunction(NewFunction("gamma", 1, func(args []float64) (float64, error) {
		return math.Gamma(args[0]), nil
	}))
	c.RegisterFunction(NewFunction("lgamma", 1, func(args []float64) (float64, error) {
		lg, _ := math.Lgamma(args[0])
		return lg, nil
	}))

	// beta(a,b) = exp(lgamma(a) + lgamma(b) - lgamma(a+b))
	c.RegisterFunction(NewFunction("beta", 2, func(args []float64) (float64, error) {
		return math.Exp(logBeta(args[0], args[1])), nil
	}))

	// igamma(a,x) is the lower incomplete gamma integral, P(a,x)*gamma(a).
	c.RegisterFunction(NewFunction("igamma", 2, func(args []float64) (float64, error) {
		return gammaIncReg(args[0], args[1]) * math.Gamma(args[0]), nil
	}))

	// gammainc(a,x) is the regularized form P(a,x).
	c.RegisterFunction(NewFunction("gammainc", 2, func(args []float64) (float64, error) {
		return gammaIncReg(args[0], args[1]), nil
	}))

	// ibeta(a,b,x) is the incomplete beta integral, I_x(a,b)*beta(a,b).
	c.RegisterFunction(NewFunction("ibeta", 3, func(args []float64) (float64, error) {
		a, b, x := args[0], args[1], args[2]
		return regIncBeta(a, b, x) * math.Exp(logBeta(a, b)), nil
	}))

	// betainc(a,b,x) is the regularized form I_x(a,b).
	c.RegisterFunction(NewFunction("betainc", 3, func(args []float64) (float64, error) {
		return regIncBeta(args[0], args[1], args[2]), nil
	}))

	c.RegisterFunction(NewFunction("erf", 1, func(args []float64) (float64, error) {
		return math.Erf(args[0]), nil
	}))
	c.RegisterFunction(NewFunction("erfc", 1, func(args []float64) (float64, error) {
		return math.Erfc(args[0]), nil
	}))
	c.RegisterFunction(NewFunction("inverf", 1, func(args []float64) (float64, error) {
		return math.Erfinv(args[0]), nil
	}))
	c.RegisterFunction(NewFunction("inverfc", 1, func(args []float64) (float64, error) {
		return math.Erfcinv(args[0]), nil
	}))
}

// registerStatisticalFunctions installs the standard normal CDF and its
// inverse, backed by gonum's distribution package.
func (c *Context) registerStatisticalFunctions() {
	c.RegisterFunction(NewFunction("norm", 1, func(args []float64) (float64, error) {
		return distuv.UnitNormal.CDF(args[0]), nil
	}))
	c.RegisterFunction(NewFunction("invnorm", 1, func(args []float64) (float64, error) {
		p := args[0]
		if p < 0 || p > 1 || math.IsNaN(p) {
			return math.NaN(), nil
		}
		return distuv.UnitNormal.Quantile(p), nil
	}))
}

// gammaIncReg wraps the regularized lower incomplete gamma function with the
// silent-NaN domain policy; gonum panics outside a > 0, x >= 0.
func gammaIncReg(a, x float64) float64 {
	if a <= 0 || x < 0 || math.IsNaN(a) || math.IsNaN(x) {
		return math.NaN()
	}
	return mathext.GammaIncReg(a, x)
}

// regIncBeta wraps the regularized incomplete beta function with the
// silent-NaN domain policy; gonum panics outside 0 <= x <= 1.
func regIncBeta(a, b, x float64) float64 {
	if a <= 0 || b <= 0 || x < 0 || x > 1 || math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(x) {
		return math.NaN()
	}
	return mathext.RegIncBeta(a, b, x)
}

func logBeta(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return la + lb - lab
}

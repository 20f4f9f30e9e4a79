// Package complexnum provides the immutable complex value type used by the
// complex evaluator and by library functions that need complex intermediate
// results.
//
// Values are an immutable {real, imag} pair of doubles. Equality is exact
// double equality; IsReal is an approximate predicate for display and
// branching only. Division by zero yields NaN components rather than
// panicking, matching the silent-propagation numeric model of the real
// evaluator.
package complexnum

import (
	"fmt"
	"math"
)

// realEpsilon bounds the imaginary part below which a value is treated as
// real for display and branching.
const realEpsilon = 1e-15

// Complex is an immutable complex number.
type Complex struct {
	re, im float64
}

// Zero is 0 + 0i.
var Zero = Complex{}

// One is 1 + 0i.
var One = Complex{re: 1}

// I is the imaginary unit 0 + 1i.
var I = Complex{im: 1}

// New creates a complex number from real and imaginary parts.
func New(re, im float64) Complex { return Complex{re: re, im: im} }

// FromReal creates a complex number with a zero imaginary part.
func FromReal(re float64) Complex { return Complex{re: re} }

// Real returns the real part.
func (z Complex) Real() float64 { return z.re }

// Imag returns the imaginary part.
func (z Complex) Imag() float64 { return z.im }

// IsReal reports whether the imaginary part is negligible (|imag| < 1e-15).
// It is not an equality predicate.
func (z Complex) IsReal() bool { return math.Abs(z.im) < realEpsilon }

// Abs returns the magnitude |z|.
func (z Complex) Abs() float64 { return math.Hypot(z.re, z.im) }

// Arg returns the phase angle in radians, in [-pi, pi].
func (z Complex) Arg() float64 { return math.Atan2(z.im, z.re) }

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex { return Complex{re: z.re, im: -z.im} }

// Neg returns -z.
func (z Complex) Neg() Complex { return Complex{re: -z.re, im: -z.im} }

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{re: z.re + w.re, im: z.im + w.im}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{re: z.re - w.re, im: z.im - w.im}
}

// Mul returns z * w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		re: z.re*w.re - z.im*w.im,
		im: z.re*w.im + z.im*w.re,
	}
}

// Div returns z / w. Division by zero yields NaN + NaNi.
func (z Complex) Div(w Complex) Complex {
	denom := w.re*w.re + w.im*w.im
	if denom == 0 {
		return Complex{re: math.NaN(), im: math.NaN()}
	}
	return Complex{
		re: (z.re*w.re + z.im*w.im) / denom,
		im: (z.im*w.re - z.re*w.im) / denom,
	}
}

// Equal reports exact equality of both parts.
func (z Complex) Equal(w Complex) bool { return z.re == w.re && z.im == w.im }

// Sqrt returns the principal square root. The root of a negative real is
// purely imaginary.
func Sqrt(z Complex) Complex {
	if z.im == 0 && z.re >= 0 {
		return Complex{re: math.Sqrt(z.re)}
	}
	if z.im == 0 && z.re < 0 {
		return Complex{im: math.Sqrt(-z.re)}
	}
	r := z.Abs()
	half := z.Arg() / 2
	return Complex{
		re: math.Sqrt(r) * math.Cos(half),
		im: math.Sqrt(r) * math.Sin(half),
	}
}

// Exp returns e**z.
func Exp(z Complex) Complex {
	expRe := math.Exp(z.re)
	return Complex{
		re: expRe * math.Cos(z.im),
		im: expRe * math.Sin(z.im),
	}
}

// Log returns the principal natural logarithm: log|z| + i*arg(z).
func Log(z Complex) Complex {
	return Complex{re: math.Log(z.Abs()), im: z.Arg()}
}

// Sin returns sin(z): sin(a)cosh(b) + i*cos(a)sinh(b).
func Sin(z Complex) Complex {
	return Complex{
		re: math.Sin(z.re) * math.Cosh(z.im),
		im: math.Cos(z.re) * math.Sinh(z.im),
	}
}

// Cos returns cos(z): cos(a)cosh(b) - i*sin(a)sinh(b).
func Cos(z Complex) Complex {
	return Complex{
		re: math.Cos(z.re) * math.Cosh(z.im),
		im: -math.Sin(z.re) * math.Sinh(z.im),
	}
}

// Tan returns sin(z)/cos(z).
func Tan(z Complex) Complex { return Sin(z).Div(Cos(z)) }

// Atan returns (i/2) * log((i+z)/(i-z)).
func Atan(z Complex) Complex {
	num := I.Add(z)
	den := I.Sub(z)
	return I.Div(FromReal(2)).Mul(Log(num.Div(den)))
}

// Pow returns z**w via exp(w * log(z)). Zero raised to a positive real power
// is zero; zero raised to anything else is NaN + NaNi.
func Pow(z, w Complex) Complex {
	if z.re == 0 && z.im == 0 {
		if w.re > 0 {
			return Zero
		}
		return Complex{re: math.NaN(), im: math.NaN()}
	}
	return Exp(w.Mul(Log(z)))
}

// PowReal returns z raised to a real exponent.
func PowReal(z Complex, exponent float64) Complex {
	return Pow(z, FromReal(exponent))
}

// String renders a bare real for real values, "bi" for purely imaginary
// ones, and "a + bi" / "a - bi" otherwise.
func (z Complex) String() string {
	switch {
	case z.im == 0:
		return fmt.Sprintf("%v", z.re)
	case z.re == 0:
		return fmt.Sprintf("%vi", z.im)
	case z.im > 0:
		return fmt.Sprintf("%v + %vi", z.re, z.im)
	default:
		return fmt.Sprintf("%v - %vi", z.re, -z.im)
	}
}

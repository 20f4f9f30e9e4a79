package evaluator

import (
	"math"
	"testing"

	"github.com/goplot/goplot/pkg/expr/complexnum"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
	"github.com/goplot/goplot/pkg/expr/parser"
)

func evalComplex(t *testing.T, input string, ctx *Context) complexnum.Complex {
	t.Helper()
	root, err := parser.ParseExpr(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	value, err := NewComplex(ctx).Evaluate(root)
	if err != nil {
		t.Fatalf("evaluate %q: %v", input, err)
	}
	return value
}

func wantComplex(t *testing.T, got complexnum.Complex, re, im float64) {
	t.Helper()
	const ctol = 1e-12
	if math.Abs(got.Real()-re) > ctol || math.Abs(got.Imag()-im) > ctol {
		t.Errorf("got %v, want %v + %vi", got, re, im)
	}
}

func TestComplexSqrtOfNegative(t *testing.T) {
	wantComplex(t, evalComplex(t, "sqrt(-1)", nil), 0, 1)
	wantComplex(t, evalComplex(t, "sqrt(-4)", nil), 0, 2)
	// Positive arguments stay real.
	wantComplex(t, evalComplex(t, "sqrt(9)", nil), 3, 0)
}

func TestComplexArithmetic(t *testing.T) {
	// (sqrt(-1))**2 == -1
	wantComplex(t, evalComplex(t, "sqrt(-1) ** 2", nil), -1, 0)
	wantComplex(t, evalComplex(t, "sqrt(-1) * sqrt(-1)", nil), -1, 0)
	wantComplex(t, evalComplex(t, "1 + sqrt(-4)", nil), 1, 2)
	wantComplex(t, evalComplex(t, "sqrt(-4) / 2", nil), 0, 1)
}

func TestComplexFunctionsOnComplexArguments(t *testing.T) {
	// abs and arg collapse to real values.
	wantComplex(t, evalComplex(t, "abs(3 + sqrt(-16))", nil), 5, 0)
	wantComplex(t, evalComplex(t, "arg(sqrt(-1))", nil), math.Pi/2, 0)
	wantComplex(t, evalComplex(t, "real(3 + sqrt(-4))", nil), 3, 0)
	wantComplex(t, evalComplex(t, "imag(3 + sqrt(-4))", nil), 2, 0)
	wantComplex(t, evalComplex(t, "conj(3 + sqrt(-4))", nil), 3, -2)
	// log of a negative real lands on the principal branch.
	wantComplex(t, evalComplex(t, "log(-1)", nil), 0, math.Pi)
	// Euler's identity through the evaluator.
	wantComplex(t, evalComplex(t, "exp(sqrt(-1) * pi)", nil), -1, 0)
}

func TestComplexFallbackToRealLibrary(t *testing.T) {
	// Functions without complex overrides run on the real parts.
	wantComplex(t, evalComplex(t, "floor(2.7 + sqrt(-1))", nil), 2, 0)
	wantComplex(t, evalComplex(t, "besj0(0)", nil), 1, 0)
}

func TestComplexComparisonsUseRealParts(t *testing.T) {
	// 1+5i < 2 compares real parts only.
	wantComplex(t, evalComplex(t, "1 + sqrt(-25) < 2", nil), 1, 0)
	// Equality compares both parts.
	wantComplex(t, evalComplex(t, "sqrt(-1) == sqrt(-1)", nil), 1, 0)
	wantComplex(t, evalComplex(t, "sqrt(-1) != 1", nil), 1, 0)
}

func TestComplexDivisionByZero(t *testing.T) {
	q := evalComplex(t, "(1 + sqrt(-1)) / 0", nil)
	if !math.IsNaN(q.Real()) || !math.IsNaN(q.Imag()) {
		t.Errorf("expected NaN + NaNi, got %v", q)
	}
}

func TestComplexBitwiseNaNOperand(t *testing.T) {
	// The NaN real part of 1i/0 truncates to 0 before the bitwise not.
	wantComplex(t, evalComplex(t, "~(sqrt(-1) / 0)", nil), -1, 0)
}

func TestComplexTernaryCondition(t *testing.T) {
	// A purely imaginary condition is still nonzero.
	wantComplex(t, evalComplex(t, "sqrt(-1) ? 1 : 2", nil), 1, 0)
	wantComplex(t, evalComplex(t, "0 ? 1 : 2", nil), 2, 0)
}

func TestComplexAssignmentStoresRealPart(t *testing.T) {
	ctx := NewContext()
	evalComplex(t, "z = 3 + sqrt(-4)", ctx)
	value, err := ctx.GetVariable("z")
	if err != nil || value != 3 {
		t.Errorf("z = %v, %v; want 3", value, err)
	}
}

func TestComplexUserFunctionBindsRealParts(t *testing.T) {
	ctx := NewContext()
	if err := ctx.DefineFunction("f", []string{"x"}, "x * 2"); err != nil {
		t.Fatalf("DefineFunction: %v", err)
	}
	wantComplex(t, evalComplex(t, "f(3 + sqrt(-4))", ctx), 6, 0)
}

func TestComplexUndefinedReferences(t *testing.T) {
	root, err := parser.ParseExpr("nosuch(1)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewComplex(NewContext()).Evaluate(root); !perrors.IsUndefined(err) {
		t.Errorf("expected undefined class, got %v", err)
	}
}

func TestEvaluateReal(t *testing.T) {
	root, err := parser.ParseExpr("2 + sqrt(-9)")
	if err != nil {
		t.Fatal(err)
	}
	value, err := NewComplex(nil).EvaluateReal(root)
	if err != nil {
		t.Fatal(err)
	}
	if value != 2 {
		t.Errorf("EvaluateReal = %v, want 2", value)
	}
}

package evaluator

import (
	stderrors "errors"
	"math"
	"strings"
	"testing"

	perrors "github.com/goplot/goplot/pkg/expr/errors"
)

const tol = 1e-12

func evalOK(t *testing.T, input string, ctx *Context) float64 {
	t.Helper()
	value, err := EvalString(input, ctx)
	if err != nil {
		t.Fatalf("EvalString(%q) failed: %v", input, err)
	}
	return value
}

func closeTo(got, want float64) bool {
	if math.IsNaN(want) {
		return math.IsNaN(got)
	}
	if math.IsInf(want, 0) {
		return got == want
	}
	diff := math.Abs(got - want)
	if diff <= tol {
		return true
	}
	return diff <= tol*math.Max(math.Abs(got), math.Abs(want))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"7 / 2", 3.5},
		{"7 % 3", 1},
		{"-7 % 3", -1},
		{"2 ** 10", 1024},
		{"2 ** 3 ** 2", 512},
		{"-2 ** 2", -4},
		{"(-2) ** 2", 4},
		{"2 ** -1", 0.5},
		{"--5", 5},
		{"+5", 5},
		{"1e3 + .5", 1000.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evalOK(t, tt.input, nil); !closeTo(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIEEEPropagation(t *testing.T) {
	tests := []struct {
		input string
		check func(float64) bool
		desc  string
	}{
		{"1 / 0", func(v float64) bool { return math.IsInf(v, 1) }, "+Inf"},
		{"-1 / 0", func(v float64) bool { return math.IsInf(v, -1) }, "-Inf"},
		{"0 / 0", math.IsNaN, "NaN"},
		{"5 % 0", math.IsNaN, "NaN"},
		{"sqrt(-1)", math.IsNaN, "NaN"},
		{"log(-1)", math.IsNaN, "NaN"},
		{"log(0)", func(v float64) bool { return math.IsInf(v, -1) }, "-Inf"},
		{"1 / 0 + 1", func(v float64) bool { return math.IsInf(v, 1) }, "+Inf"},
		{"0 / 0 == 0 / 0", func(v float64) bool { return v == 0 }, "0 (NaN compares unequal)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := evalOK(t, tt.input, nil)
			if !tt.check(got) {
				t.Errorf("got %v, want %s", got, tt.desc)
			}
		})
	}
}

func TestComparisonsAndLogic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1 < 2", 1},
		{"2 < 1", 0},
		{"2 <= 2", 1},
		{"3 > 2", 1},
		{"2 >= 3", 0},
		{"2 == 2", 1},
		{"2 != 2", 0},
		{"1 && 2", 1},
		{"1 && 0", 0},
		{"0 || 3", 1},
		{"0 || 0", 0},
		{"!0", 1},
		{"!42", 0},
		{"~0", -1},
		{"5 & 3", 1},
		{"5 | 3", 7},
		{"5 ^ 3", 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evalOK(t, tt.input, nil); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// Non-finite bitwise operands truncate with saturation: NaN becomes 0 and
// the infinities clamp to the ends of the int64 range, independent of the
// architecture.
func TestBitwiseNonFiniteOperands(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"~(0/0)", -1},
		{"(0/0) & 7", 0},
		{"(0/0) | 5", 5},
		{"(1/0) & 7", 7},
		{"(1/0) ^ (1/0)", 0},
		{"(-1/0) | 0", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evalOK(t, tt.input, nil); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// The right operand of && and || must not be evaluated when the left operand
// decides the result.
func TestLogicalShortCircuit(t *testing.T) {
	if got := evalOK(t, "0 && undefined_name", nil); got != 0 {
		t.Errorf("0 && _: got %v, want 0", got)
	}
	if got := evalOK(t, "1 || undefined_name", nil); got != 1 {
		t.Errorf("1 || _: got %v, want 1", got)
	}

	// When the left does not decide, the right is evaluated and may fail.
	if _, err := EvalString("1 && undefined_name", NewContext()); err == nil {
		t.Error("1 && _: expected undefined variable error")
	}
}

func TestTernarySelectsOneBranch(t *testing.T) {
	if got := evalOK(t, "1 ? 10 : undefined_name", nil); got != 10 {
		t.Errorf("got %v, want 10", got)
	}
	if got := evalOK(t, "0 ? undefined_name : 20", nil); got != 20 {
		t.Errorf("got %v, want 20", got)
	}
	if got := evalOK(t, "x = -3, x > 0 ? x : -x", nil); got != 3 {
		t.Errorf("got %v, want 3", got)
	}
}

func TestAssignment(t *testing.T) {
	ctx := NewContext()

	if got := evalOK(t, "x = 5", ctx); got != 5 {
		t.Errorf("assignment value: got %v, want 5", got)
	}
	if got := evalOK(t, "x + 1", ctx); got != 6 {
		t.Errorf("stored value: got %v, want 6", got)
	}

	// Chained assignment binds both names.
	evalOK(t, "a = b = 7", ctx)
	for _, name := range []string{"a", "b"} {
		value, err := ctx.GetVariable(name)
		if err != nil || value != 7 {
			t.Errorf("%s = %v (err %v), want 7", name, value, err)
		}
	}
}

func TestCommaSequencing(t *testing.T) {
	ctx := NewContext()
	if got := evalOK(t, "s = 0.1, s * 10", ctx); !closeTo(got, 1) {
		t.Errorf("got %v, want 1", got)
	}
	// Left-to-right: later assignments see earlier ones.
	if got := evalOK(t, "a = 1, b = a + 1, a + b", ctx); got != 3 {
		t.Errorf("got %v, want 3", got)
	}
}

func TestConstants(t *testing.T) {
	if got := evalOK(t, "pi", nil); got != math.Pi {
		t.Errorf("pi = %v", got)
	}
	if got := evalOK(t, "e", nil); got != math.E {
		t.Errorf("e = %v", got)
	}
	// Constants may be shadowed like any variable.
	ctx := NewContext()
	evalOK(t, "pi = 3", ctx)
	if got := evalOK(t, "pi", ctx); got != 3 {
		t.Errorf("shadowed pi = %v, want 3", got)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := EvalString("2 + foo", NewContext())
	if err == nil {
		t.Fatal("expected error")
	}
	if !perrors.IsUndefined(err) {
		t.Errorf("expected undefined class, got %v", err)
	}
	if !strings.Contains(err.Error(), "undefined variable: foo") {
		t.Errorf("unexpected message: %v", err)
	}

	var ee *perrors.Error
	if !stderrors.As(err, &ee) {
		t.Fatal("not a structured error")
	}
	if ee.Line != 1 || ee.Column != 5 {
		t.Errorf("error at %d:%d, want 1:5", ee.Line, ee.Column)
	}
}

func TestUndefinedFunction(t *testing.T) {
	_, err := EvalString("nosuch(1)", NewContext())
	if err == nil {
		t.Fatal("expected error")
	}
	if !perrors.IsUndefined(err) {
		t.Errorf("expected undefined class, got %v", err)
	}
	if !strings.Contains(err.Error(), "undefined function: nosuch") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestWrongArgumentCount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sin()", "wrong number of arguments to sin: expected 1, got 0"},
		{"sin(1, 2)", "wrong number of arguments to sin: expected 1, got 2"},
		{"atan2(1)", "wrong number of arguments to atan2: expected 2, got 1"},
		{"min(1)", "wrong number of arguments to min: expected at least 2, got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := EvalString(tt.input, NewContext())
			if err == nil {
				t.Fatal("expected error")
			}
			if !perrors.IsInvalidArgument(err) {
				t.Errorf("expected argument class, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	ctx := NewContext()
	if got := evalOK(t, "atan2(x = 1, x + 1)", ctx); !closeTo(got, math.Atan2(1, 2)) {
		t.Errorf("got %v, want %v", got, math.Atan2(1, 2))
	}
}

func TestEvaluatePanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(nil).Evaluate(nil)
}

func TestUserDefinedFunctions(t *testing.T) {
	ctx := NewContext()
	if err := ctx.DefineFunction("f", []string{"t"}, "t**2 + 1"); err != nil {
		t.Fatalf("DefineFunction: %v", err)
	}

	if got := evalOK(t, "f(3)", ctx); got != 10 {
		t.Errorf("f(3) = %v, want 10", got)
	}

	// Parameters shadow and restore outer bindings.
	ctx.SetVariable("t", 99)
	evalOK(t, "f(2)", ctx)
	if value, _ := ctx.GetVariable("t"); value != 99 {
		t.Errorf("t = %v after call, want 99", value)
	}

	// User functions shadow builtins of the same name.
	if err := ctx.DefineFunction("sin", []string{"x"}, "x"); err != nil {
		t.Fatalf("DefineFunction: %v", err)
	}
	if got := evalOK(t, "sin(2)", ctx); got != 2 {
		t.Errorf("shadowed sin(2) = %v, want 2", got)
	}

	// Wrong arity is an argument error.
	_, err := EvalString("f(1, 2)", ctx)
	if !perrors.IsInvalidArgument(err) {
		t.Errorf("expected argument class, got %v", err)
	}
}

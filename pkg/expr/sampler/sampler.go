// Package sampler evaluates an expression over a sweep of input values,
// producing plottable points. It is the boundary where evaluation failures
// stop being errors: a point that cannot be computed becomes a NaN sample so
// downstream consumers can render gaps instead of aborting the sweep.
package sampler

import (
	"math"

	"github.com/goplot/goplot/pkg/expr/ast"
	"github.com/goplot/goplot/pkg/expr/evaluator"
	"github.com/goplot/goplot/pkg/expr/parser"
)

// Point is a single sample of an expression.
type Point struct {
	X float64
	Y float64
}

// Sampler repeatedly evaluates one expression against a shared context,
// rebinding the sweep variable between evaluations.
type Sampler struct {
	eval    *evaluator.Evaluator
	root    ast.Expression
	varName string
}

// New creates a sampler for the given expression and sweep variable. The
// expression is parsed once; a malformed expression is reported here, before
// any sampling happens.
func New(input, varName string, ctx *evaluator.Context) (*Sampler, error) {
	root, err := parser.ParseExpr(input)
	if err != nil {
		return nil, err
	}
	return &Sampler{
		eval:    evaluator.New(ctx),
		root:    root,
		varName: varName,
	}, nil
}

// Context returns the evaluation context samples are computed against.
func (s *Sampler) Context() *evaluator.Context { return s.eval.Context() }

// At evaluates the expression with the sweep variable bound to x. A failed
// evaluation yields NaN rather than an error.
func (s *Sampler) At(x float64) Point {
	s.eval.Context().SetVariable(s.varName, x)
	y, err := s.eval.Evaluate(s.root)
	if err != nil {
		return Point{X: x, Y: math.NaN()}
	}
	return Point{X: x, Y: y}
}

// Sample evaluates the expression at each of the given inputs, in order.
func (s *Sampler) Sample(xs []float64) []Point {
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = s.At(x)
	}
	return points
}

// SampleRange evaluates the expression at n evenly spaced points from min to
// max inclusive. n must be at least 2; fewer points cannot span a range.
func (s *Sampler) SampleRange(min, max float64, n int) []Point {
	if n < 2 {
		panic("sampler: need at least 2 points to span a range")
	}
	step := (max - min) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = min + float64(i)*step
	}
	// Pin the endpoint so accumulated step error cannot overshoot max.
	xs[n-1] = max
	return s.Sample(xs)
}

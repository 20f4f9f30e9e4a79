// Package evaluator computes numeric results from parsed expressions.
//
// A Context holds variable bindings and the function registry; the Evaluator
// walks an AST against a Context and produces a float64. A parallel
// ComplexEvaluator produces complex values for callers that need them. A
// fresh Context always carries the standard constants and the full standard
// function library.
package evaluator

import (
	"math"
	"sync"

	"github.com/goplot/goplot/pkg/expr/ast"
	perrors "github.com/goplot/goplot/pkg/expr/errors"
	"github.com/goplot/goplot/pkg/expr/parser"
)

// UserFunction is a function defined from expression text, such as
// f(t) = t**2. The body is parsed once at definition time.
type UserFunction struct {
	Name   string
	Params []string
	Body   ast.Expression
	// BodyText is the original body source, kept for display.
	BodyText string
}

// Context is the mutable environment expressions are evaluated against.
//
// A Context is intended to be reused across many evaluations, with only the
// sampling variable changing between calls. It is not safe for concurrent
// mutation; callers sampling in parallel should use one Context per
// goroutine. The only deliberately thread-safe path is rand(0), which draws
// from a process-wide source.
type Context struct {
	variables  map[string]float64
	functions  map[string]*Function
	complexFns map[string]*ComplexFunction
	userFns    map[string]*UserFunction

	// The seeded random generator lives on the context itself, guarded by
	// its own lock so that concurrent misuse degrades to unspecified
	// ordering instead of a data race.
	seedMu sync.Mutex
	seeded *seededSource
}

// NewContext creates a context with the standard constants and the full
// standard function library registered.
func NewContext() *Context {
	ctx := &Context{
		variables:  make(map[string]float64),
		functions:  make(map[string]*Function),
		complexFns: make(map[string]*ComplexFunction),
		userFns:    make(map[string]*UserFunction),
	}
	ctx.registerStandardConstants()
	ctx.registerStandardFunctions()
	return ctx
}

// registerStandardConstants installs the built-in constants. They are
// ordinary variables and may be shadowed by SetVariable.
func (c *Context) registerStandardConstants() {
	c.variables["pi"] = math.Pi
	c.variables["e"] = math.E
}

// registerStandardFunctions installs the standard library. The individual
// categories live in the stdlib_*.go files.
func (c *Context) registerStandardFunctions() {
	c.registerMathFunctions()
	c.registerBesselFunctions()
	c.registerSpecialFunctions()
	c.registerStatisticalFunctions()
	c.registerRandomFunctions()
	c.registerComplexFunctions()
}

// SetVariable binds a value to a name, creating or overwriting the binding.
func (c *Context) SetVariable(name string, value float64) {
	c.variables[name] = value
}

// GetVariable looks up a variable, failing with an undefined-reference error
// when absent.
func (c *Context) GetVariable(name string) (float64, error) {
	value, ok := c.variables[name]
	if !ok {
		return 0, perrors.NewUndefined("undefined variable: %s", name)
	}
	return value, nil
}

// HasVariable reports whether a variable is bound.
func (c *Context) HasVariable(name string) bool {
	_, ok := c.variables[name]
	return ok
}

// RemoveVariable deletes a variable binding, if present.
func (c *Context) RemoveVariable(name string) {
	delete(c.variables, name)
}

// ClearVariables removes all variables and restores the built-in constants.
func (c *Context) ClearVariables() {
	c.variables = make(map[string]float64)
	c.registerStandardConstants()
}

// VariableNames returns the names of all bound variables, in no particular
// order.
func (c *Context) VariableNames() []string {
	names := make([]string, 0, len(c.variables))
	for name := range c.variables {
		names = append(names, name)
	}
	return names
}

// RegisterFunction installs a real-valued function, shadowing any existing
// registration under the same name.
func (c *Context) RegisterFunction(fn *Function) {
	c.functions[fn.Name()] = fn
}

// GetFunction looks up a function, failing with an undefined-reference error
// when absent.
func (c *Context) GetFunction(name string) (*Function, error) {
	fn, ok := c.functions[name]
	if !ok {
		return nil, perrors.NewUndefined("undefined function: %s", name)
	}
	return fn, nil
}

// HasFunction reports whether a function is registered.
func (c *Context) HasFunction(name string) bool {
	_, ok := c.functions[name]
	return ok
}

// RemoveFunction deletes a function registration, if present.
func (c *Context) RemoveFunction(name string) {
	delete(c.functions, name)
}

// ClearFunctions removes every registered callable, built-ins included.
// Re-registering the standard library is the caller's responsibility.
func (c *Context) ClearFunctions() {
	c.functions = make(map[string]*Function)
	c.complexFns = make(map[string]*ComplexFunction)
	c.userFns = make(map[string]*UserFunction)
}

// FunctionNames returns the names of all registered real-valued functions,
// in no particular order.
func (c *Context) FunctionNames() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	return names
}

// RegisterComplexFunction installs a complex-aware function. The complex
// evaluator consults these before falling back to the real library.
func (c *Context) RegisterComplexFunction(fn *ComplexFunction) {
	c.complexFns[fn.Name()] = fn
}

// GetComplexFunction returns the complex-aware function registered under
// name, or nil.
func (c *Context) GetComplexFunction(name string) *ComplexFunction {
	return c.complexFns[name]
}

// HasComplexFunction reports whether a complex-aware function is registered.
func (c *Context) HasComplexFunction(name string) bool {
	_, ok := c.complexFns[name]
	return ok
}

// DefineFunction registers a user function from parameter names and body
// text, as produced by the f(x) = expr definition form. The body is parsed
// immediately; a malformed body is reported here, not at call time.
func (c *Context) DefineFunction(name string, params []string, body string) error {
	root, err := parser.ParseExpr(body)
	if err != nil {
		return err
	}
	c.userFns[name] = &UserFunction{
		Name:     name,
		Params:   params,
		Body:     root,
		BodyText: body,
	}
	return nil
}

// GetUserFunction returns the user function registered under name, or nil.
func (c *Context) GetUserFunction(name string) *UserFunction {
	return c.userFns[name]
}

// RemoveUserFunction deletes a user function, if present.
func (c *Context) RemoveUserFunction(name string) {
	delete(c.userFns, name)
}

// UserFunctionNames returns the names of all user-defined functions, in no
// particular order.
func (c *Context) UserFunctionNames() []string {
	names := make([]string, 0, len(c.userFns))
	for name := range c.userFns {
		names = append(names, name)
	}
	return names
}

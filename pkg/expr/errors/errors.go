// Package errors provides the structured error type shared by the expression
// lexer, parser, and evaluator.
//
// Every error carries a class for programmatic filtering, an optional
// 1-based source location, and optional display context (the offending
// expression text and a suggestion line). The rendered form:
//
//	undefined variable: foo at line 1, column 5
//	  Expression: 2 + foo
//	          ^
//	  Suggestion: define the variable before using it
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Class categorizes errors for filtering and testing.
type Class string

const (
	// ClassSyntax marks malformed input caught by the lexer or parser.
	ClassSyntax Class = "syntax"
	// ClassUndefined marks a variable or function name missing from the
	// evaluation context.
	ClassUndefined Class = "undefined"
	// ClassInvalidArgument marks a wrong argument count or an
	// out-of-contract argument value.
	ClassInvalidArgument Class = "argument"
)

// Error is the structured error produced by the expression packages.
type Error struct {
	Class      Class
	Message    string
	Line       int    // 1-based, 0 when unknown
	Column     int    // 1-based, 0 when unknown
	Expression string // the full expression text, when known
	Suggestion string // a hint for fixing the error, when one exists
}

// expressionPrefix is the label in front of the echoed expression text. The
// caret line below it must line up with the offending column.
const expressionPrefix = "  Expression: "

// Error renders the error in the diagnostic format shown in the package
// comment. Location, expression, and suggestion lines appear only when the
// information is available.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d, column %d", e.Line, e.Column)
	}

	if e.Expression != "" {
		sb.WriteString("\n")
		sb.WriteString(expressionPrefix)
		sb.WriteString(e.Expression)
		if e.Line > 0 && e.Column > 0 {
			sb.WriteString("\n  ")
			sb.WriteString(strings.Repeat(" ", len(expressionPrefix)-2+e.Column-1))
			sb.WriteString("^")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n  Suggestion: ")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// WithLocation returns a copy of the error carrying the given 1-based
// position. A location already present is kept.
func (e *Error) WithLocation(line, column int) *Error {
	if e.Line > 0 {
		return e
	}
	out := *e
	out.Line = line
	out.Column = column
	return &out
}

// NewSyntax builds a syntax error at the given 1-based position.
func NewSyntax(line, column int, format string, args ...any) *Error {
	return &Error{
		Class:   ClassSyntax,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// NewUndefined builds an undefined-reference error.
func NewUndefined(format string, args ...any) *Error {
	return &Error{
		Class:   ClassUndefined,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidArgument builds an invalid-argument error.
func NewInvalidArgument(format string, args ...any) *Error {
	return &Error{
		Class:   ClassInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsSyntax reports whether err is (or wraps) a syntax error.
func IsSyntax(err error) bool { return hasClass(err, ClassSyntax) }

// IsUndefined reports whether err is (or wraps) an undefined-reference error.
func IsUndefined(err error) bool { return hasClass(err, ClassUndefined) }

// IsInvalidArgument reports whether err is (or wraps) an invalid-argument
// error.
func IsInvalidArgument(err error) bool { return hasClass(err, ClassInvalidArgument) }

func hasClass(err error, class Class) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Class == class
	}
	return false
}

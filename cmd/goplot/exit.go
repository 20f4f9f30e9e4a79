package main

import "fmt"

// Exit codes: 1 for malformed expressions, 2 for evaluation failures,
// 3 for bad command-line input.
const (
	exitSyntax   = 1
	exitEval     = 2
	exitBadInput = 3
)

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

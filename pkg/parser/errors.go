package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapsh/pkg/token"
)

// ParseError represents a parsing error with optional position information.
type ParseError struct {
	Message string
	Pos     *token.Position // nil when the location is unknown

	// Cause is the underlying fault for errors recovered from a panic.
	Cause error
}

func (e *ParseError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("ParseError at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return "ParseError: " + e.Message
}

// Unwrap returns the underlying fault, if any.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Common error messages
const (
	ErrExpected        = "Expected %s"
	ErrUnexpectedToken = "Unexpected %s"
	ErrTooDeep         = "Maximum nesting depth of %d exceeded"
	ErrInternal        = "Internal error: %v"
)

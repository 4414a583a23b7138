package manifest

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input errors
	ErrEmptyInput    = errors.New("manifest is empty")
	ErrInvalidSyntax = errors.New("invalid manifest syntax")
	ErrUnknownFormat = errors.New("unknown manifest format")

	// Section errors
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrInvalidPlatform = errors.New("invalid platform entry")
	ErrInvalidTemplate = errors.New("invalid application template")
)

// ParseError wraps errors with the manifest field that caused them.
type ParseError struct {
	Field   string // e.g., "stages[1].domain"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

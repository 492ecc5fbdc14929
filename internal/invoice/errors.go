package invoice

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed is returned when an invoice or a file's content cannot
// be produced.
var ErrGenerationFailed = errors.New("invoice generation failed")

// GenerationError wraps errors with context about the generation step that failed.
type GenerationError struct {
	// Op is the operation that failed (e.g., "Build", "Assemble").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches ErrGenerationFailed as well as the wrapped error.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed || errors.Is(e.Err, target)
}

// WrapGenerationError wraps an error as a GenerationError if it isn't already one.
func WrapGenerationError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	return &GenerationError{Op: op, Err: err, Details: details}
}

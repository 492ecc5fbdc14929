package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is matched by every ParamError.
var ErrInvalidParams = errors.New("invalid generation parameters")

// ParamError reports a missing or invalid generation parameter.
type ParamError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("parameter %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("parameter %q: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is matches ErrInvalidParams.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParams
}

func missing(field string) *ParamError {
	return &ParamError{Field: field, Message: "missing value"}
}

func invalid(field string, value any, message string) *ParamError {
	return &ParamError{Field: field, Value: value, Message: message}
}

package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for response evaluation.
var (
	// ErrInvalidParameter indicates a physical or window parameter outside its domain.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrOverdamped indicates a damping ratio at or above critical damping.
	ErrOverdamped = errors.New("dynamo: system is not underdamped (zeta >= 1)")
)

// ParameterError wraps a domain error with the offending parameter.
type ParameterError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%g", e.Wrapped.Error(), e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}

func invalid(name string, value float64) error {
	return &ParameterError{Name: name, Value: value, Wrapped: ErrInvalidParameter}
}

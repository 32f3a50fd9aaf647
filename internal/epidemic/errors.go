package epidemic

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrConfiguration = errors.New("epidemic: configuration error")
	ErrInvalidState  = errors.New("epidemic: invalid state")
)

// ConfigurationError reports an invalid region, spacing or parameter.
// It is only ever returned at construction time, never mid-run.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("epidemic: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidStateError reports an operation that is not allowed in the
// engine's current state, e.g. starting a run twice.
type InvalidStateError struct {
	Op     string
	State  State
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("epidemic: cannot %s while %s: %s", e.Op, e.State, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidState) match.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

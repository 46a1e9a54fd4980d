package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidHandle indicates a body id that was invalidated by a clear
	// or never issued by the registry.
	ErrInvalidHandle = errors.New("dynamo: invalid body handle")

	// ErrInvalidConfig indicates a configuration rejected at construction.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidBody indicates a body with non-positive or non-finite mass.
	ErrInvalidBody = errors.New("dynamo: invalid body")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("%s: %s %s, got %g", ErrInvalidConfig, e.Field, reason, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

package types

import "fmt"

// ConfigurationError is returned when a model or boundary condition is built
// from an invalid coefficient dictionary. It is always fatal.
type ConfigurationError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Value) == 0 {
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s = %q: %s", e.Key, e.Value, e.Reason)
}

// SolveError wraps a failure of the host linear solve for one transported
// field. It is never retried.
type SolveError struct {
	Field FieldName
	Err   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("linear solve failed for field %s: %v", e.Field, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrUnknownSystem indicates a system name that does not match any SystemKind.
	ErrUnknownSystem = errors.New("dynamo: unknown system")

	// ErrInvalidParameter indicates a coefficient name not defined for the active system.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter name")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrRunNotFound indicates a stored run id that does not exist.
	ErrRunNotFound = errors.New("dynamo: run not found")
)

// ParameterError wraps an error with the parameter and system it concerns.
type ParameterError struct {
	System  SystemKind
	Name    string
	Wrapped error
}

func (e *ParameterError) Error() string {
	return e.Wrapped.Error() + ": " + e.Name + " (" + e.System.String() + ")"
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}

package property

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized is returned when a property name is not in the registry.
	ErrNotAuthorized = errors.New("property: not authorized")

	// ErrNotAvailable is returned when a property cannot currently be read.
	ErrNotAvailable = errors.New("property: not available")

	// ErrInternal marks an invariant violation inside the core.
	ErrInternal = errors.New("property: internal error")
)

// AccessError reports why a named property could not be accessed.
// Err is ErrNotAuthorized or ErrNotAvailable.
type AccessError struct {
	Property string
	Err      error
}

func (e *AccessError) Error() string {
	switch e.Err {
	case ErrNotAuthorized:
		return fmt.Sprintf("Property '%s' does not exist or is not authorized", e.Property)
	case ErrNotAvailable:
		return fmt.Sprintf("Property '%s' is currently not available", e.Property)
	default:
		return fmt.Sprintf("Property '%s': %v", e.Property, e.Err)
	}
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

func internalErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

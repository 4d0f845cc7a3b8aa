package functions

import "errors"

var (
	// ErrUnknownFunction is returned when no function has the requested name.
	ErrUnknownFunction = errors.New("functions: unknown function")

	// ErrInvalidArguments is returned when arguments cannot be decoded.
	ErrInvalidArguments = errors.New("functions: invalid arguments")
)

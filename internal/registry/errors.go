package registry

import "errors"

var (
	// ErrInvalidConfig is wrapped by every error produced while parsing or
	// validating a definition file.
	ErrInvalidConfig = errors.New("registry: invalid config")

	// ErrDuplicateProperty is returned by New when two properties share a
	// name or an id.
	ErrDuplicateProperty = errors.New("registry: duplicate property")
)

// ConfigError is a definition file error. Its message is stable and is
// shown to the config author verbatim.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErr(msg string) error {
	return &ConfigError{Message: msg}
}

package dialect

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDialect is the sentinel matched by every ConfigurationError.
var ErrUnsupportedDialect = errors.New("dialect not supported")

// ConfigurationError reports a dialect that has no implementation. It is
// returned by factory entry points, never during parsing.
type ConfigurationError struct {
	Dialect ID
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dialect %s: %s", e.Dialect, e.Message)
	}
	return fmt.Sprintf("dialect %s: %s", e.Dialect, ErrUnsupportedDialect)
}

// Unwrap returns ErrUnsupportedDialect.
func (e *ConfigurationError) Unwrap() error {
	return ErrUnsupportedDialect
}

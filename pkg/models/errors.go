package models

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates an invalid option set. It is raised
// before any file I/O takes place: a run that fails configuration
// validation never touches the trees. Malformed filter patterns are
// configuration errors too.
type ConfigurationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// IsConfigurationError reports whether err is a configuration error
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a configuration value outside its allowed set.
var ErrInvalidValue = errors.New("invalid configuration value")

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

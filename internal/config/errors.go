package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration lookups.
var (
	// ErrSettingNotFound indicates the setting path does not exist.
	ErrSettingNotFound = errors.New("config: setting not found")

	// ErrTypeMismatch indicates the value type does not match the
	// requested type.
	ErrTypeMismatch = errors.New("config: type mismatch")
)

// TypeError reports a value of the wrong type at a setting path.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config: %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches TypeError against ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

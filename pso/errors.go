package pso

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is wrapped by every configuration error.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrResourceExhausted is wrapped when the swarm buffers for a run cannot be allocated.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// ConfigError describes a single invalid configuration value.
//
// errors.Is(err, ErrInvalidSettings) reports true for every ConfigError.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidSettings }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ResourceError reports a buffer that would exceed MaxBufferElements.
type ResourceError struct {
	What     string
	Elements int
}

func (e *ResourceError) Error() string {
	if e.Elements < 0 {
		return fmt.Sprintf("cannot allocate %s: size overflows int", e.What)
	}
	return fmt.Sprintf("cannot allocate %s: %d elements exceeds limit %d", e.What, e.Elements, MaxBufferElements)
}

func (e *ResourceError) Unwrap() error { return ErrResourceExhausted }

package snapshot

import (
	"errors"
	"fmt"
)

// Kind classifies a ConfigError.
type Kind int

const (
	// IOFailure means the source could not be opened or read.
	IOFailure Kind = iota + 1
	// InvalidSource means the source location itself is malformed or unusable.
	InvalidSource
)

func (k Kind) String() string {
	switch k {
	case IOFailure:
		return "io failure"
	case InvalidSource:
		return "invalid source"
	default:
		return "unknown"
	}
}

var (
	// ErrIOFailure matches any ConfigError of kind IOFailure via errors.Is.
	ErrIOFailure = errors.New("source unreadable")
	// ErrInvalidSource matches any ConfigError of kind InvalidSource via errors.Is.
	ErrInvalidSource = errors.New("invalid source")
)

// ConfigError is returned when a snapshot cannot be built from its source.
type ConfigError struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to load datapack %s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("failed to load datapack %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrIOFailure:
		return e.Kind == IOFailure
	case ErrInvalidSource:
		return e.Kind == InvalidSource
	}
	return false
}

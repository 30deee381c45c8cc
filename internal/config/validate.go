package config

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/pngtidy/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidOutput indicates an unrecognized output format.
	ErrInvalidOutput = errors.New("invalid output format")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if err := paths.ValidatePath(cfg.Dir); err != nil {
		errs = append(errs, &FieldError{Field: "dir", Value: cfg.Dir, Err: err})
	}

	switch cfg.Output {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, &FieldError{Field: "output", Value: cfg.Output, Err: ErrInvalidOutput})
	}

	return errs
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

package sharpmath

import "errors"

// Errors of the top-level API. The subsystems (parser, solve, matrix)
// declare and wrap their own sentinels; these cover the facade itself.
var (
	// ErrUnknownCalculateType is returned when no solver exists for a
	// calculation type.
	ErrUnknownCalculateType = errors.New("unknown calculate type")

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
)

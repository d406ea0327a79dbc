package cli

import "errors"

// Sentinel errors for command operations
var (
	ErrMatrixTooLarge = errors.New("matrix exceeds the configured size limit")
)

package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInputFile is returned when no input file is configured.
	ErrNoInputFile = errors.New("no input file specified")

	// ErrInvalidMaxLineSize is returned when input.maxLineSize is negative.
	// Zero selects the parser default.
	ErrInvalidMaxLineSize = errors.New("invalid max line size: must be non-negative")
)

package app

import (
	"errors"

	"github.com/NivBraz/linefreq/pkg/parser"
)

// Failure kinds returned by Generate. Every error it returns matches
// exactly one of these with errors.Is, or is the context's error.
var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("file does not exist")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = parser.ErrInvalidUTF8

	// ErrIO wraps any other failure while reading the input or writing the report.
	ErrIO = errors.New("I/O failure")
)

package buffer

import (
	"errors"
	"fmt"
)

// Buffer errors. Every error returned by this package wraps one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrInvalidArgument is returned for negative sizes or capacities,
	// malformed layouts and component counts that do not match a type.
	ErrInvalidArgument = errors.New("buffer: invalid argument")

	// ErrOutOfRange is returned when an offset, index or ordinal falls
	// outside the addressable region.
	ErrOutOfRange = errors.New("buffer: out of range")

	// ErrNotFound is returned when a layout has no field with a given name.
	ErrNotFound = errors.New("buffer: not found")

	// ErrUnsupported is returned when a type has no device representation
	// for the requested export (vertex format, shader type).
	ErrUnsupported = errors.New("buffer: unsupported type")

	// ErrTypeMismatch is returned when a typed record accessor is used on a
	// field of a different type. It wraps ErrInvalidArgument.
	ErrTypeMismatch = fmt.Errorf("%w: type mismatch", ErrInvalidArgument)
)

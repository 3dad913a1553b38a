package cdf

import (
	"errors"
	"fmt"
)

var (
	ErrBadMagic            = errors.New("cdf: missing CDF magic")
	ErrUnknownVersion      = errors.New("cdf: unknown format version")
	ErrUnknownType         = errors.New("cdf: unknown type tag")
	ErrTruncated           = errors.New("cdf: truncated header")
	ErrInvalidUTF8         = errors.New("cdf: name is not valid UTF-8")
	ErrMalformedListMarker = errors.New("cdf: malformed list marker")

	// Returned by Header.Validate only; Decode never produces them.
	ErrDimensionIndex  = errors.New("cdf: dimension id out of range")
	ErrRecordDimension = errors.New("cdf: misplaced record dimension")
)

// DecodeError records where in the buffer a decode failed.
// Err is always one of the package sentinels.
type DecodeError struct {
	Offset int
	Field  string
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(off int, field string, err error, format string, args ...any) error {
	de := &DecodeError{Offset: off, Field: field, Err: err}
	if format != "" {
		de.Detail = fmt.Sprintf(format, args...)
	}
	return de
}

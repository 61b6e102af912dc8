package dta

import "errors"

var (
	// ErrSourceUnreadable is returned by Open when the source cannot be
	// inspected or scanned.
	ErrSourceUnreadable = errors.New("dta: source unreadable")

	// ErrInvalidIdentifier is returned when an identifier has the wrong kind
	// for the mode of the File, or is malformed.
	ErrInvalidIdentifier = errors.New("dta: invalid identifier")

	// ErrNotFound is returned for well-formed identifiers that name no spectrum.
	ErrNotFound = errors.New("dta: spectrum not found")

	// ErrTruncatedRead is returned when fewer bytes than an indexed range
	// specifies could be read.
	ErrTruncatedRead = errors.New("dta: truncated read")

	// ErrUnsupportedOperation is returned by mutating iterator operations.
	ErrUnsupportedOperation = errors.New("dta: unsupported operation")

	// ErrDecode is returned by the default decoder for text that holds no spectrum.
	ErrDecode = errors.New("dta: decode failed")

	// ErrSizeOverflow is returned when a segment does not fit a 32-bit size.
	ErrSizeOverflow = errors.New("dta: size overflow")

	// ErrInvalidPattern is returned by Open for a malformed member glob.
	ErrInvalidPattern = errors.New("dta: invalid filename pattern")
)

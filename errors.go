package bitstream

import "errors"

// Errors returned by Reader and Writer operations. End-of-input is reported
// as io.EOF, straight from the underlying source.
var (
	// ErrWidthRange is returned when a requested bit count is over 64
	// (or negative for WriteZeros).
	ErrWidthRange = errors.New("bitstream: bit count out of range")

	// ErrKRange is returned when an Exp-Golomb order is over 31.
	ErrKRange = errors.New("bitstream: exp-golomb order out of range")

	// ErrNonPositive is returned when zero is passed to a code defined
	// only for positive integers (Elias-Gamma, Fibonacci).
	ErrNonPositive = errors.New("bitstream: value must be positive")

	// ErrOverflow is returned when a decoded code does not fit the integer
	// width the call produces (the wider decode variant must be used
	// instead; the failing call consumes an unspecified number of bits),
	// or when a value to encode is outside the code's domain.
	ErrOverflow = errors.New("bitstream: coded value does not fit the requested width")

	// ErrNonZeroPadding is returned by Reader.Sync when the buffered bits
	// are not all zero, meaning the stream position does not match a
	// Writer.Sync padding point.
	ErrNonZeroPadding = errors.New("bitstream: sync would discard non-zero bits")
)

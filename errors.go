package bine

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfRange is returned when decoding needs bytes past the end of
	// the buffer.
	ErrOutOfRange = errors.New("read out of range")

	// ErrInvalidEncoding is returned when a buffer holds bytes that no
	// value of the expected type encodes to, like an overlong varint or a
	// negative count.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// outOfRange builds an ErrOutOfRange for a read of n bytes at off in a
// buffer of len l.
func outOfRange(off, n, l int) error {
	return errors.Wrapf(ErrOutOfRange, "need %d bytes at offset %d, buffer has %d", n, off, l)
}

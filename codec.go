package bine

import (
	"github.com/cockroachdb/errors"

	"github.com/binelab/bine/size"
)

// Codec bundles the three operations available for every type this package
// handles: appending the encoding of a value to a buffer, decoding a value
// at an offset, and sizing encodings from values or from buffers. Codecs are
// immutable and safe for concurrent use from multiple goroutines; the
// constructors build all three operations once per configuration, so calls
// never re-inspect how the codec was built.
type Codec[T any] struct {
	enc func(dst []byte, v T) []byte
	dec func(b []byte, off int) (T, int, error)
	siz size.S[T]
}

// New builds a codec from its three operations. enc appends the encoding of
// a value to dst and returns the extended buffer. dec decodes the value
// starting at off and returns it with the offset just past it. s sizes the
// encodings. The package's own codecs are built the same way; New is how
// codecs for types this package does not know about join the composition.
func New[T any](enc func(dst []byte, v T) []byte, dec func(b []byte, off int) (T, int, error), s size.S[T]) Codec[T] {
	return Codec[T]{enc: enc, dec: dec, siz: s}
}

// Encode appends the encoding of v to dst and returns the extended buffer.
func (c Codec[T]) Encode(dst []byte, v T) []byte {
	return c.enc(dst, v)
}

// Decode reads the value starting at off in b. It returns the value and the
// offset just past its encoding, so decoding a sequence of values threads
// the returned offset into the next call.
func (c Codec[T]) Decode(b []byte, off int) (T, int, error) {
	return c.dec(b, off)
}

// Size returns the codec's size descriptor.
func (c Codec[T]) Size() size.S[T] {
	return c.siz
}

// Marshal encodes v into a fresh buffer with exactly the needed capacity.
func Marshal[T any](c Codec[T], v T) []byte {
	return c.enc(make([]byte, 0, c.siz.Of(v)), v)
}

// Unmarshal decodes a single value from b. It fails with ErrInvalidEncoding
// if decoding does not consume the whole buffer.
func Unmarshal[T any](c Codec[T], b []byte) (T, error) {
	v, end, err := c.dec(b, 0)
	if err != nil {
		return v, err
	}
	if end != len(b) {
		var zero T
		return zero, errors.Wrapf(ErrInvalidEncoding, "%d trailing bytes after value", len(b)-end)
	}
	return v, nil
}

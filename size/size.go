// Package size describes the encoded size of values two independent ways:
// from the value itself, without encoding it, and from an encoded buffer,
// without decoding it. Codecs attach a descriptor to every type they handle
// so that callers can allocate exactly, skip over encoded values, or crop
// them out of a larger buffer without materializing them.
package size

import "github.com/cockroachdb/errors"

// ErrUnavailable is returned by End when the end of an encoded value cannot
// be located without decoding it.
var ErrUnavailable = errors.New("size: end not resolvable from encoding")

// EndFunc locates the end of an encoded value: given a buffer and the offset
// the value starts at, it returns the offset just past its last byte.
type EndFunc func(b []byte, off int) (int, error)

// S describes the encoded size of values of type T. A descriptor is either
// static, a constant byte count independent of the value, or dynamic, a
// function of the value with an optional function of the encoding. The zero
// value is a static size of 0.
type S[T any] struct {
	n   int
	of  func(T) int
	end EndFunc
}

// Static returns a descriptor for values that always encode to n bytes.
// Static descriptors resolve End without reading the buffer.
func Static[T any](n int) S[T] {
	return S[T]{n: n}
}

// Dynamic returns a descriptor for values whose encoded size depends on the
// value. of computes the encoded length of a value. end locates the end of
// an encoded value; it may be nil when the encoding carries no way to find
// its own end.
func Dynamic[T any](of func(T) int, end EndFunc) S[T] {
	return S[T]{of: of, end: end}
}

// Const returns the byte count and true if the descriptor is static.
func (s S[T]) Const() (int, bool) {
	if s.of == nil {
		return s.n, true
	}
	return 0, false
}

// Of returns the number of bytes v encodes to.
func (s S[T]) Of(v T) int {
	if s.of == nil {
		return s.n
	}
	return s.of(v)
}

// HasEnd reports whether End can resolve the end of an encoded value.
// Values whose descriptor lacks it cannot be skipped or cropped without
// external knowledge of where they stop.
func (s S[T]) HasEnd() bool {
	return s.of == nil || s.end != nil
}

// End returns the offset just past the encoded value starting at off.
// It does not decode the value. It returns ErrUnavailable when the
// descriptor cannot resolve ends from encodings.
func (s S[T]) End(b []byte, off int) (int, error) {
	if s.of == nil {
		return off + s.n, nil
	}
	if s.end == nil {
		return 0, errors.WithStack(ErrUnavailable)
	}
	return s.end(b, off)
}

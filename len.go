package bine

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/binelab/bine/size"
)

// Len selects how a variable-length container encodes the count of bytes or
// elements that follow it.
//
// LenVarint writes the count as a varint; the fixed-width kinds write it
// with the matching signed integer codec. LenFixed(n) and LenRemain write
// nothing: the former pins the count to a constant agreed out of band, the
// latter lets the decoder take whatever is left of the buffer.
type Len struct {
	kind  uint8
	fixed int
}

const (
	lenVarint uint8 = iota
	lenInt8
	lenInt16
	lenInt32
	lenInt64
	lenFixed
	lenRemain
)

var (
	LenVarint = Len{kind: lenVarint}
	LenInt8   = Len{kind: lenInt8}
	LenInt16  = Len{kind: lenInt16}
	LenInt32  = Len{kind: lenInt32}
	LenInt64  = Len{kind: lenInt64}
	LenRemain = Len{kind: lenRemain}
)

// LenFixed pins the count to n. Nothing is written before the content and
// decoding hands n back without reading the buffer.
func LenFixed(n int) Len {
	if n < 0 {
		panic(fmt.Sprintf("negative fixed count %d", n))
	}
	return Len{kind: lenFixed, fixed: n}
}

func (l Len) String() string {
	switch l.kind {
	case lenVarint:
		return "varint"
	case lenInt8:
		return "int8"
	case lenInt16:
		return "int16"
	case lenInt32:
		return "int32"
	case lenInt64:
		return "int64"
	case lenFixed:
		return fmt.Sprintf("fixed(%d)", l.fixed)
	case lenRemain:
		return "remain"
	}
	panic("unreachable")
}

// counter is the staged form of a Len: the header's own encode, decode and
// size, built once when a container codec is constructed. dec returns the
// count and the offset just past the header.
type counter struct {
	enc func(dst []byte, n int) []byte
	dec func(b []byte, off int) (int, int, error)
	siz size.S[int]
}

func (l Len) counter() counter {
	switch l.kind {
	case lenVarint:
		return counter{
			enc: func(dst []byte, n int) []byte {
				return appendUvarint(dst, uint64(countInRange(n, math.MaxInt64)))
			},
			dec: func(b []byte, off int) (int, int, error) {
				x, end, err := decodeUvarint(b, off)
				if err != nil {
					return 0, 0, err
				}
				if x > math.MaxInt {
					return 0, 0, errors.Wrapf(ErrInvalidEncoding, "count %d overflows int", x)
				}
				return int(x), end, nil
			},
			siz: size.Dynamic(func(n int) int { return uvarintLen(uint64(n)) }, skipUvarint),
		}
	case lenInt8:
		return counter{
			enc: func(dst []byte, n int) []byte {
				return write1(dst, uint8(countInRange(n, math.MaxInt8)))
			},
			dec: func(b []byte, off int) (int, int, error) {
				x, end, err := read1(b, off)
				if err != nil {
					return 0, 0, err
				}
				return checkCount(int64(int8(x)), end)
			},
			siz: size.Static[int](1),
		}
	case lenInt16:
		return counter{
			enc: func(dst []byte, n int) []byte {
				return write2(dst, uint16(countInRange(n, math.MaxInt16)))
			},
			dec: func(b []byte, off int) (int, int, error) {
				x, end, err := read2(b, off)
				if err != nil {
					return 0, 0, err
				}
				return checkCount(int64(int16(x)), end)
			},
			siz: size.Static[int](2),
		}
	case lenInt32:
		return counter{
			enc: func(dst []byte, n int) []byte {
				return write4(dst, uint32(countInRange(n, math.MaxInt32)))
			},
			dec: func(b []byte, off int) (int, int, error) {
				x, end, err := read4(b, off)
				if err != nil {
					return 0, 0, err
				}
				return checkCount(int64(int32(x)), end)
			},
			siz: size.Static[int](4),
		}
	case lenInt64:
		return counter{
			enc: func(dst []byte, n int) []byte {
				return write8(dst, uint64(countInRange(n, math.MaxInt64)))
			},
			dec: func(b []byte, off int) (int, int, error) {
				x, end, err := read8(b, off)
				if err != nil {
					return 0, 0, err
				}
				return checkCount(int64(x), end)
			},
			siz: size.Static[int](8),
		}
	case lenFixed:
		n := l.fixed
		return counter{
			enc: func(dst []byte, c int) []byte {
				if c != n {
					panic(fmt.Sprintf("count %d does not match fixed size %d", c, n))
				}
				return dst
			},
			dec: func(b []byte, off int) (int, int, error) {
				if off < 0 || off > len(b) {
					return 0, 0, outOfRange(off, 0, len(b))
				}
				return n, off, nil
			},
			siz: size.Static[int](0),
		}
	case lenRemain:
		return counter{
			enc: func(dst []byte, c int) []byte { return dst },
			dec: func(b []byte, off int) (int, int, error) {
				if off < 0 || off > len(b) {
					return 0, 0, outOfRange(off, 0, len(b))
				}
				return len(b) - off, off, nil
			},
			siz: size.Static[int](0),
		}
	}
	panic("unreachable")
}

// countInRange guards the encode side. Counts are measured from real
// slices, so a count that does not fit the configured header is a
// misconfigured codec, not bad data.
func countInRange(n int, max int64) int {
	if n < 0 || int64(n) > max {
		panic(fmt.Sprintf("count %d does not fit the length header", n))
	}
	return n
}

// checkCount guards the decode side, where a count is data like any other.
func checkCount(c int64, end int) (int, int, error) {
	if c < 0 {
		return 0, 0, errors.Wrapf(ErrInvalidEncoding, "negative count %d", c)
	}
	if c > math.MaxInt {
		return 0, 0, errors.Wrapf(ErrInvalidEncoding, "count %d overflows int", c)
	}
	return int(c), end, nil
}

package bine

import (
	"math"

	"github.com/binelab/bine/size"
)

func fixed[T any](n int, enc func(dst []byte, v T) []byte, dec func(b []byte, off int) (T, int, error)) Codec[T] {
	return Codec[T]{enc: enc, dec: dec, siz: size.Static[T](n)}
}

func write1(dst []byte, n uint8) []byte {
	return append(dst, n)
}

func write2(dst []byte, n uint16) []byte {
	return append(dst, byte(n>>8), byte(n))
}

func write4(dst []byte, n uint32) []byte {
	return append(
		dst,
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func write8(dst []byte, n uint64) []byte {
	return append(
		dst,
		byte(n>>56),
		byte(n>>48),
		byte(n>>40),
		byte(n>>32),
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func read1(b []byte, off int) (uint8, int, error) {
	if off < 0 || len(b)-off < 1 {
		return 0, 0, outOfRange(off, 1, len(b))
	}
	return b[off], off + 1, nil
}

func read2(b []byte, off int) (uint16, int, error) {
	if off < 0 || len(b)-off < 2 {
		return 0, 0, outOfRange(off, 2, len(b))
	}
	return (uint16(b[off]) << 8) | uint16(b[off+1]), off + 2, nil
}

func read4(b []byte, off int) (uint32, int, error) {
	if off < 0 || len(b)-off < 4 {
		return 0, 0, outOfRange(off, 4, len(b))
	}
	x := (uint32(b[off]) << 24) |
		(uint32(b[off+1]) << 16) |
		(uint32(b[off+2]) << 8) |
		uint32(b[off+3])
	return x, off + 4, nil
}

func read8(b []byte, off int) (uint64, int, error) {
	if off < 0 || len(b)-off < 8 {
		return 0, 0, outOfRange(off, 8, len(b))
	}
	x := (uint64(b[off]) << 56) |
		(uint64(b[off+1]) << 48) |
		(uint64(b[off+2]) << 40) |
		(uint64(b[off+3]) << 32) |
		(uint64(b[off+4]) << 24) |
		(uint64(b[off+5]) << 16) |
		(uint64(b[off+6]) << 8) |
		uint64(b[off+7])
	return x, off + 8, nil
}

// Fixed-width signed integers: one, two, four and eight bytes of big-endian
// two's complement.
var (
	Int8 = fixed(1,
		func(dst []byte, v int8) []byte { return write1(dst, uint8(v)) },
		func(b []byte, off int) (int8, int, error) {
			x, end, err := read1(b, off)
			return int8(x), end, err
		})

	Int16 = fixed(2,
		func(dst []byte, v int16) []byte { return write2(dst, uint16(v)) },
		func(b []byte, off int) (int16, int, error) {
			x, end, err := read2(b, off)
			return int16(x), end, err
		})

	Int32 = fixed(4,
		func(dst []byte, v int32) []byte { return write4(dst, uint32(v)) },
		func(b []byte, off int) (int32, int, error) {
			x, end, err := read4(b, off)
			return int32(x), end, err
		})

	Int64 = fixed(8,
		func(dst []byte, v int64) []byte { return write8(dst, uint64(v)) },
		func(b []byte, off int) (int64, int, error) {
			x, end, err := read8(b, off)
			return int64(x), end, err
		})
)

// Unsigned counterparts, same widths and byte order.
var (
	Uint8  = fixed(1, write1, read1)
	Uint16 = fixed(2, write2, read2)
	Uint32 = fixed(4, write4, read4)
	Uint64 = fixed(8, write8, read8)

	// Byte is Uint8 under the name call sites reading raw octets expect.
	Byte = Uint8
)

// Float64 encodes the IEEE-754 double bit pattern as eight big-endian
// bytes. NaN payloads survive the round trip bit for bit.
var Float64 = fixed(8,
	func(dst []byte, v float64) []byte { return write8(dst, math.Float64bits(v)) },
	func(b []byte, off int) (float64, int, error) {
		x, end, err := read8(b, off)
		return math.Float64frombits(x), end, err
	})

package bine

import (
	"github.com/cockroachdb/errors"

	"github.com/binelab/bine/size"
)

// maxVarintLen is the longest legal varint: ten 7-bit groups cover 64 bits.
const maxVarintLen = 10

// Uvarint encodes non-negative integers seven bits per byte, least
// significant group first, with the high bit set on every byte except the
// last. Encodings are always minimal; decoding stays within ten bytes and
// 64 bits of magnitude. Uvarint is also the default length header of the
// variable-length containers.
var Uvarint = Codec[uint64]{
	enc: appendUvarint,
	dec: decodeUvarint,
	siz: size.Dynamic(uvarintLen, skipUvarint),
}

func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func decodeUvarint(b []byte, off int) (uint64, int, error) {
	if off < 0 {
		return 0, 0, outOfRange(off, 1, len(b))
	}

	var x uint64
	var shift uint

	for i := 0; i < maxVarintLen; i++ {
		if off+i >= len(b) {
			return 0, 0, outOfRange(off+i, 1, len(b))
		}
		c := b[off+i]
		if c < 0x80 {
			if i == maxVarintLen-1 && c > 1 {
				return 0, 0, errors.Wrap(ErrInvalidEncoding, "varint overflows 64 bits")
			}
			return x | uint64(c)<<shift, off + i + 1, nil
		}
		x |= uint64(c&0x7F) << shift
		shift += 7
	}

	return 0, 0, errors.Wrap(ErrInvalidEncoding, "varint longer than 10 bytes")
}

// uvarintLen counts the groups v encodes to without encoding it.
func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		n++
		v >>= 7
	}
	return n
}

// skipUvarint finds the end of a varint by scanning continuation bits; the
// magnitude is never reconstructed.
func skipUvarint(b []byte, off int) (int, error) {
	if off < 0 {
		return 0, outOfRange(off, 1, len(b))
	}

	for i := 0; i < maxVarintLen; i++ {
		if off+i >= len(b) {
			return 0, outOfRange(off+i, 1, len(b))
		}
		if b[off+i] < 0x80 {
			return off + i + 1, nil
		}
	}

	return 0, errors.Wrap(ErrInvalidEncoding, "varint longer than 10 bytes")
}

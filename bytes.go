package bine

import (
	"unsafe"

	"github.com/binelab/bine/size"
)

// String returns a codec for strings under the given length header: the
// header carries the byte count, the raw bytes follow. LenFixed(n) pins the
// string to exactly n bytes and makes the codec static. LenRemain is the
// unboxed form: nothing precedes the content and decoding takes the rest of
// the buffer, so the value must be the last thing encoded in it.
//
// Unboxed decoding from offset 0 aliases the buffer instead of copying;
// mutating the buffer afterwards changes the string. Every other decode
// path copies.
func String(h Len) Codec[string] {
	if h.kind == lenRemain {
		return Codec[string]{
			enc: func(dst []byte, v string) []byte { return append(dst, v...) },
			dec: func(b []byte, off int) (string, int, error) {
				if off < 0 || off > len(b) {
					return "", 0, outOfRange(off, 0, len(b))
				}
				if off == 0 {
					return bytesToString(b), len(b), nil
				}
				return string(b[off:]), len(b), nil
			},
			siz: size.Dynamic(func(v string) int { return len(v) }, nil),
		}
	}

	c := h.counter()

	enc := func(dst []byte, v string) []byte {
		dst = c.enc(dst, len(v))
		return append(dst, v...)
	}
	dec := func(b []byte, off int) (string, int, error) {
		n, at, err := c.dec(b, off)
		if err != nil {
			return "", 0, err
		}
		if n > len(b)-at {
			return "", 0, outOfRange(at, n, len(b))
		}
		return string(b[at : at+n]), at + n, nil
	}

	if h.kind == lenFixed {
		return Codec[string]{enc: enc, dec: dec, siz: size.Static[string](h.fixed)}
	}

	return Codec[string]{
		enc: enc,
		dec: dec,
		siz: size.Dynamic(
			func(v string) int { return c.siz.Of(len(v)) + len(v) },
			func(b []byte, off int) (int, error) {
				n, at, err := c.dec(b, off)
				if err != nil {
					return 0, err
				}
				return at + n, nil
			},
		),
	}
}

// Bytes returns a codec for byte slices. Layouts and header kinds are the
// same as String's. Boxed decoding copies the content out of the buffer;
// unboxed decoding from offset 0 returns the buffer itself.
func Bytes(h Len) Codec[[]byte] {
	if h.kind == lenRemain {
		return Codec[[]byte]{
			enc: func(dst []byte, v []byte) []byte { return append(dst, v...) },
			dec: func(b []byte, off int) ([]byte, int, error) {
				if off < 0 || off > len(b) {
					return nil, 0, outOfRange(off, 0, len(b))
				}
				if off == 0 {
					return b, len(b), nil
				}
				cp := make([]byte, len(b)-off)
				copy(cp, b[off:])
				return cp, len(b), nil
			},
			siz: size.Dynamic(func(v []byte) int { return len(v) }, nil),
		}
	}

	c := h.counter()

	enc := func(dst []byte, v []byte) []byte {
		dst = c.enc(dst, len(v))
		return append(dst, v...)
	}
	dec := func(b []byte, off int) ([]byte, int, error) {
		n, at, err := c.dec(b, off)
		if err != nil {
			return nil, 0, err
		}
		if n > len(b)-at {
			return nil, 0, outOfRange(at, n, len(b))
		}
		cp := make([]byte, n)
		copy(cp, b[at:at+n])
		return cp, at + n, nil
	}

	if h.kind == lenFixed {
		return Codec[[]byte]{enc: enc, dec: dec, siz: size.Static[[]byte](h.fixed)}
	}

	return Codec[[]byte]{
		enc: enc,
		dec: dec,
		siz: size.Dynamic(
			func(v []byte) int { return c.siz.Of(len(v)) + len(v) },
			func(b []byte, off int) (int, error) {
				n, at, err := c.dec(b, off)
				if err != nil {
					return 0, err
				}
				return at + n, nil
			},
		),
	}
}

// bytesToString aliases b as a string without copying.
func bytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

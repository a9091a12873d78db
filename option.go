package bine

import "github.com/binelab/bine/size"

// Option wraps a codec so absence is encodable. A nil pointer writes the
// single byte 0x00; a non-nil pointer writes 0xFF followed by the element.
// Decoding accepts any non-zero tag as present, mirroring Bool, and returns
// a pointer to a freshly decoded element.
func Option[T any](el Codec[T]) Codec[*T] {
	enc := func(dst []byte, v *T) []byte {
		if v == nil {
			return append(dst, falseByte)
		}
		return el.enc(append(dst, trueByte), *v)
	}
	dec := func(b []byte, off int) (*T, int, error) {
		tag, at, err := read1(b, off)
		if err != nil {
			return nil, 0, err
		}
		if tag == falseByte {
			return nil, at, nil
		}
		v, end, err := el.dec(b, at)
		if err != nil {
			return nil, 0, err
		}
		return &v, end, nil
	}

	return Codec[*T]{enc: enc, dec: dec, siz: optionSize(el.siz)}
}

func optionSize[T any](el size.S[T]) size.S[*T] {
	// a zero-byte element leaves only the tag, present or not
	if n, ok := el.Const(); ok && n == 0 {
		return size.Static[*T](1)
	}

	of := func(v *T) int {
		if v == nil {
			return 1
		}
		return 1 + el.Of(*v)
	}
	if !el.HasEnd() {
		return size.Dynamic(of, nil)
	}
	return size.Dynamic(of, func(b []byte, off int) (int, error) {
		tag, at, err := read1(b, off)
		if err != nil {
			return 0, err
		}
		if tag == falseByte {
			return at, nil
		}
		return el.End(b, at)
	})
}

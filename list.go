package bine

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/binelab/bine/size"
)

// maxPrealloc caps how much a decoder allocates up front on the strength of
// a count it has not verified against the buffer yet.
const maxPrealloc = 4096

// List returns a codec for slices of el's type: a header carrying the
// element count, then each element's encoding in order. LenFixed(n) writes
// no count and pins the slice length to n on both sides. LenRemain is
// rejected: it describes a byte count, not an element count.
func List[T any](h Len, el Codec[T]) Codec[[]T] {
	if h.kind == lenRemain {
		panic("remain header is only valid for string and bytes")
	}

	c := h.counter()
	elConst, elStatic := el.siz.Const()

	enc := func(dst []byte, v []T) []byte {
		dst = c.enc(dst, len(v))
		for i := range v {
			dst = el.enc(dst, v[i])
		}
		return dst
	}

	dec := func(b []byte, off int) ([]T, int, error) {
		n, at, err := c.dec(b, off)
		if err != nil {
			return nil, 0, err
		}
		if elStatic && elConst > 0 && n > (len(b)-at)/elConst {
			return nil, 0, outOfRange(at, n*elConst, len(b))
		}
		cp := n
		if (!elStatic || elConst == 0) && cp > maxPrealloc {
			cp = maxPrealloc
		}
		out := make([]T, 0, cp)
		for i := 0; i < n; i++ {
			var v T
			v, at, err = el.dec(b, at)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, v)
		}
		return out, at, nil
	}

	return Codec[[]T]{enc: enc, dec: dec, siz: listSize(h, c, el.siz)}
}

// Array is List with a LenFixed header: exactly n elements, no count on the
// wire.
func Array[T any](n int, el Codec[T]) Codec[[]T] {
	return List(LenFixed(n), el)
}

func listSize[T any](h Len, c counter, el size.S[T]) size.S[[]T] {
	elConst, elStatic := el.Const()

	if elStatic {
		if h.kind == lenFixed {
			return size.Static[[]T](h.fixed * elConst)
		}
		return size.Dynamic(
			func(v []T) int { return c.siz.Of(len(v)) + len(v)*elConst },
			func(b []byte, off int) (int, error) {
				n, at, err := c.dec(b, off)
				if err != nil {
					return 0, err
				}
				if elConst > 0 && n > (math.MaxInt-at)/elConst {
					return 0, errors.Wrapf(ErrInvalidEncoding, "count %d overflows int", n)
				}
				return at + n*elConst, nil
			},
		)
	}

	of := func(v []T) int {
		t := c.siz.Of(len(v))
		for i := range v {
			t += el.Of(v[i])
		}
		return t
	}
	if !el.HasEnd() {
		return size.Dynamic(of, nil)
	}
	return size.Dynamic(of, func(b []byte, off int) (int, error) {
		n, at, err := c.dec(b, off)
		if err != nil {
			return 0, err
		}
		// no shortcut here: every element boundary has to be visited
		for i := 0; i < n; i++ {
			at, err = el.End(b, at)
			if err != nil {
				return 0, err
			}
		}
		return at, nil
	})
}

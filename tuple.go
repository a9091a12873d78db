package bine

import "github.com/binelab/bine/size"

// Pair is two values encoded back to back, nothing in between.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is three values encoded back to back.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// PairOf returns a codec for pairs: a's encoding followed by b's. Sizing
// composes the fields' descriptors, so a pair of static codecs is static
// and a pair stays skippable as long as both fields are.
func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return Codec[Pair[A, B]]{
		enc: func(dst []byte, v Pair[A, B]) []byte {
			dst = a.enc(dst, v.First)
			return b.enc(dst, v.Second)
		},
		dec: func(buf []byte, off int) (Pair[A, B], int, error) {
			var p Pair[A, B]
			var err error
			p.First, off, err = a.dec(buf, off)
			if err != nil {
				return Pair[A, B]{}, 0, err
			}
			p.Second, off, err = b.dec(buf, off)
			if err != nil {
				return Pair[A, B]{}, 0, err
			}
			return p, off, nil
		},
		siz: size.Join2(
			a.siz, func(p Pair[A, B]) A { return p.First },
			b.siz, func(p Pair[A, B]) B { return p.Second },
		),
	}
}

// TripleOf returns a codec for triples, composed the same way as PairOf.
func TripleOf[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Triple[A, B, C]] {
	return Codec[Triple[A, B, C]]{
		enc: func(dst []byte, v Triple[A, B, C]) []byte {
			dst = a.enc(dst, v.First)
			dst = b.enc(dst, v.Second)
			return c.enc(dst, v.Third)
		},
		dec: func(buf []byte, off int) (Triple[A, B, C], int, error) {
			var t Triple[A, B, C]
			var err error
			t.First, off, err = a.dec(buf, off)
			if err != nil {
				return Triple[A, B, C]{}, 0, err
			}
			t.Second, off, err = b.dec(buf, off)
			if err != nil {
				return Triple[A, B, C]{}, 0, err
			}
			t.Third, off, err = c.dec(buf, off)
			if err != nil {
				return Triple[A, B, C]{}, 0, err
			}
			return t, off, nil
		},
		siz: size.Join3(
			a.siz, func(t Triple[A, B, C]) A { return t.First },
			b.siz, func(t Triple[A, B, C]) B { return t.Second },
			c.siz, func(t Triple[A, B, C]) C { return t.Third },
		),
	}
}

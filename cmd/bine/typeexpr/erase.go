package typeexpr

import (
	"github.com/binelab/bine"
	"github.com/binelab/bine/size"
)

// erased wraps a typed codec into one working on any. Encoding asserts the
// value back to T and panics on a value of the wrong type, like any failed
// type assertion.
func erased[T any](c bine.Codec[T]) bine.Codec[any] {
	return bine.New(
		func(dst []byte, v any) []byte {
			return c.Encode(dst, v.(T))
		},
		func(b []byte, off int) (any, int, error) {
			v, end, err := c.Decode(b, off)
			if err != nil {
				return nil, end, err
			}
			return v, end, nil
		},
		erasedSize(c.Size()),
	)
}

// erasedSize carries a size descriptor across the erasure. Staticness and
// end availability survive unchanged.
func erasedSize[T any](s size.S[T]) size.S[any] {
	if n, ok := s.Const(); ok {
		return size.Static[any](n)
	}
	var end size.EndFunc
	if s.HasEnd() {
		end = s.End
	}
	return size.Dynamic(func(v any) int { return s.Of(v.(T)) }, end)
}

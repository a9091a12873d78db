package store

import (
	"bytes"

	"github.com/cockroachdb/pebble"
	"golang.org/x/exp/constraints"

	"github.com/binelab/bine"
)

// Comparer builds a pebble comparer that orders keys by their decoded value
// rather than by their encoded bytes. Keys that fail to decode are ordered
// by their bytes; keys written through a Store always decode.
func Comparer[K constraints.Ordered](kc bine.Codec[K]) *pebble.Comparer {
	return &pebble.Comparer{
		Compare: func(a, b []byte) int {
			ka, _, erra := kc.Decode(a, 0)
			kb, _, errb := kc.Decode(b, 0)
			if erra != nil || errb != nil {
				return bytes.Compare(a, b)
			}
			if ka < kb {
				return -1
			}
			if ka > kb {
				return 1
			}
			// ties are broken on bytes so that Compare never
			// disagrees with Equal
			return bytes.Compare(a, b)
		},
		Equal: bytes.Equal,
		// A constant abbreviated key never claims an order between two
		// keys, which is always sound. Pebble falls back to Compare.
		AbbreviatedKey: func(key []byte) uint64 { return 0 },
		FormatKey:      pebble.DefaultComparer.FormatKey,
		Separator:      func(dst, a, b []byte) []byte { return append(dst, a...) },
		Successor:      func(dst, a []byte) []byte { return append(dst, a...) },
		// This name is stored in the database files. Opening an
		// existing store with a differently named comparer fails.
		Name: "bine.ordered",
	}
}

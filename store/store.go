// Package store implements a Pebble-backed key/value store whose keys and
// values go through codecs. Keys are compared in decoded form, so iteration
// follows the order of the key type rather than the order of its encoding.
package store

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"golang.org/x/exp/constraints"

	"github.com/binelab/bine"
)

// ErrKeyNotFound is returned when the targeted key doesn't exist.
var ErrKeyNotFound = errors.New("key not found")

// Store is a pebble database holding one kind of key and one kind of value.
type Store[K constraints.Ordered, V any] struct {
	db *pebble.DB
	kc bine.Codec[K]
	vc bine.Codec[V]
}

// Open opens the store at path, creating it if needed. It takes the same
// options as Pebble's Open function; a nil opts is filled with defaults.
// The key comparer and the logger are installed unless opts already
// carries its own.
func Open[K constraints.Ordered, V any](path string, kc bine.Codec[K], vc bine.Codec[V], opts *pebble.Options) (*Store[K, V], error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	if opts.Comparer == nil {
		opts.Comparer = Comparer(kc)
	}
	if opts.Logger == nil {
		opts.Logger = pebbleLogger{}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}

	return &Store[K, V]{db: db, kc: kc, vc: vc}, nil
}

// Put stores a key value pair. If it already exists, it overrides it.
func (s *Store[K, V]) Put(k K, v V) error {
	return s.db.Set(bine.Marshal(s.kc, k), bine.Marshal(s.vc, v), nil)
}

// Get returns the value associated with the given key. If not found, returns ErrKeyNotFound.
func (s *Store[K, V]) Get(k K) (V, error) {
	var zero V

	value, closer, err := s.db.Get(bine.Marshal(s.kc, k))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return zero, errors.WithStack(ErrKeyNotFound)
		}
		return zero, err
	}

	// pebble reclaims value after the closer is closed, and decoded
	// values may alias the buffer they were decoded from
	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return zero, err
	}

	return bine.Unmarshal(s.vc, cp)
}

// Has reports whether the given key exists.
func (s *Store[K, V]) Has(k K) (bool, error) {
	_, closer, err := s.db.Get(bine.Marshal(s.kc, k))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	err = closer.Close()
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a key. If not found, returns ErrKeyNotFound.
func (s *Store[K, V]) Delete(k K) error {
	key := bine.Marshal(s.kc, k)

	_, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.WithStack(ErrKeyNotFound)
		}
		return err
	}
	err = closer.Close()
	if err != nil {
		return err
	}

	return s.db.Delete(key, nil)
}

// Range calls fn for every pair whose key is at least min and below max, in
// decoded key order. A nil bound leaves that side of the range open.
// Iteration stops at the first error returned by fn.
func (s *Store[K, V]) Range(min, max *K, fn func(k K, v V) error) error {
	var iopts pebble.IterOptions
	if min != nil {
		iopts.LowerBound = bine.Marshal(s.kc, *min)
	}
	if max != nil {
		iopts.UpperBound = bine.Marshal(s.kc, *max)
	}

	it := s.db.NewIter(&iopts)
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		// the slices returned by it.Key and it.Value are only valid
		// until the next move
		k, err := bine.Unmarshal(s.kc, append([]byte(nil), it.Key()...))
		if err != nil {
			return err
		}
		v, err := bine.Unmarshal(s.vc, append([]byte(nil), it.Value()...))
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}

	return it.Error()
}

// Close closes the underlying pebble database.
func (s *Store[K, V]) Close() error {
	return s.db.Close()
}

package store

import (
	"github.com/cockroachdb/pebble"
	"golang.org/x/exp/constraints"

	"github.com/binelab/bine"
)

// Batch accumulates writes that are applied atomically on Commit.
type Batch[K constraints.Ordered, V any] struct {
	s *Store[K, V]
	b *pebble.Batch
}

// Batch starts an empty write batch against the store.
func (s *Store[K, V]) Batch() *Batch[K, V] {
	return &Batch[K, V]{s: s, b: s.db.NewBatch()}
}

// Put adds a key value pair to the batch.
func (b *Batch[K, V]) Put(k K, v V) error {
	return b.b.Set(bine.Marshal(b.s.kc, k), bine.Marshal(b.s.vc, v), nil)
}

// Delete adds the removal of a key to the batch. Unlike Store.Delete,
// removing a key that doesn't exist is not an error.
func (b *Batch[K, V]) Delete(k K) error {
	return b.b.Delete(bine.Marshal(b.s.kc, k), nil)
}

// Len returns the number of writes accumulated so far.
func (b *Batch[K, V]) Len() int {
	return int(b.b.Count())
}

// Commit applies the batch to the store and closes it.
func (b *Batch[K, V]) Commit() error {
	err := b.b.Commit(nil)
	if err != nil {
		return err
	}
	return b.b.Close()
}

// Close discards the batch without applying it.
func (b *Batch[K, V]) Close() error {
	return b.b.Close()
}

// Package registry stores values of unrelated types in one persistent map,
// behind globally unique typed keys. A value put in under a Key[T] can only
// come back out through that same key, and the retrieval is checked at
// runtime: the map proves the stored value really is a T before handing it
// over, so the type systems of writer and reader meet even though the
// container itself is erased.
package registry

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// witness ties a key to its type parameter at runtime. Every key gets its
// own allocation and retrieval compares pointers, so the struct must not be
// empty: zero-sized allocations may share an address.
type witness struct {
	typ reflect.Type
}

var lastID atomic.Uint64

// Key identifies one slot of type T across every Map in the process. Keys
// are handles, not names: two keys created with the same name are distinct
// slots. Key identity lasts for the process; ids are never reused.
type Key[T any] struct {
	id   uint64
	name string
	w    *witness
}

// NewKey allocates a fresh key of type T with a human-readable name. It is
// safe to call from any number of goroutines; ids are drawn from one atomic
// counter and increase in creation order.
func NewKey[T any](name string) Key[T] {
	return Key[T]{
		id:   lastID.Add(1),
		name: name,
		w:    &witness{typ: reflect.TypeOf((*T)(nil)).Elem()},
	}
}

// ID returns the key's process-wide unique id.
func (k Key[T]) ID() uint64 { return k.id }

// Name returns the label the key was created with.
func (k Key[T]) Name() string { return k.name }

func (k Key[T]) String() string {
	return fmt.Sprintf("%s#%d", k.name, k.id)
}

func (k Key[T]) check() {
	if k.w == nil {
		panic("uninitialized registry key")
	}
}

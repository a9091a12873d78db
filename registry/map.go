package registry

import (
	"fmt"

	"github.com/google/btree"
)

// The degree of btrees.
const btreeDegree = 12

// binding is one erased entry. The id orders the tree, the witness guards
// extraction, val is the value with its static type removed.
type binding struct {
	id   uint64
	name string
	w    *witness
	val  any
}

func lessBinding(a, b binding) bool { return a.id < b.id }

// Map is a persistent collection of bindings under keys of unrelated
// types. The zero value is the empty map. No operation mutates a map in
// place: writes return a new Map sharing structure with the old one, so
// every version can keep being read, concurrently and without locks, by
// whoever holds it.
type Map struct {
	tr *btree.BTreeG[binding]
}

func (m Map) clone() *btree.BTreeG[binding] {
	if m.tr == nil {
		return btree.NewG(btreeDegree, lessBinding)
	}
	return m.tr.Clone()
}

// Len returns the number of bindings in the map.
func (m Map) Len() int {
	if m.tr == nil {
		return 0
	}
	return m.tr.Len()
}

// Binding is the erased view of one map entry.
type Binding struct {
	ID    uint64
	Name  string
	Value any
}

// Bindings lists the map in ascending key-id order, which is key creation
// order.
func (m Map) Bindings() []Binding {
	if m.tr == nil {
		return nil
	}
	out := make([]Binding, 0, m.tr.Len())
	m.tr.Ascend(func(b binding) bool {
		out = append(out, Binding{ID: b.id, Name: b.name, Value: b.val})
		return true
	})
	return out
}

// Add returns a map that binds v to k, replacing any previous binding for
// the same key. m itself is left as it was.
func Add[T any](m Map, k Key[T], v T) Map {
	k.check()
	tr := m.clone()
	tr.ReplaceOrInsert(binding{id: k.id, name: k.name, w: k.w, val: v})
	return Map{tr: tr}
}

// Find returns the value bound to k, or ok=false when k is not bound.
func Find[T any](m Map, k Key[T]) (T, bool) {
	var zero T
	k.check()
	if m.tr == nil {
		return zero, false
	}
	b, ok := m.tr.Get(binding{id: k.id})
	if !ok {
		return zero, false
	}
	return extract(k, b), true
}

// Mem reports whether k is bound in m.
func Mem[T any](m Map, k Key[T]) bool {
	k.check()
	if m.tr == nil {
		return false
	}
	return m.tr.Has(binding{id: k.id})
}

// Update returns a map where k's binding is whatever f decides: f receives
// the current value, with ok reporting whether one exists, and returns the
// value to bind and whether a binding should remain. Inserting, modifying
// and deleting are all this one call.
func Update[T any](m Map, k Key[T], f func(v T, ok bool) (T, bool)) Map {
	var cur T
	k.check()
	ok := false
	if m.tr != nil {
		if b, found := m.tr.Get(binding{id: k.id}); found {
			cur = extract(k, b)
			ok = true
		}
	}

	next, keep := f(cur, ok)
	if !keep && !ok {
		return m
	}

	tr := m.clone()
	if keep {
		tr.ReplaceOrInsert(binding{id: k.id, name: k.name, w: k.w, val: next})
	} else {
		tr.Delete(binding{id: k.id})
	}
	return Map{tr: tr}
}

// extract narrows an erased binding back to the key's type. A matching id
// proves the binding was made with this key, so the witness can only
// differ if two keys ever shared an id; no recoverable answer exists then.
func extract[T any](k Key[T], b binding) T {
	if b.w != k.w {
		panic(fmt.Sprintf("registry corrupted: binding %d (%s) does not carry the witness of key %s", b.id, b.name, k))
	}
	v, ok := b.val.(T)
	if !ok {
		panic(fmt.Sprintf("registry corrupted: binding %d (%s) holds %T, key %s wants %s", b.id, b.name, b.val, k, k.w.typ))
	}
	return v
}

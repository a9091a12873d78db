package registry_test

import (
	"testing"

	"github.com/binelab/bine/registry"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	k1 := registry.NewKey[int]("a")
	k2 := registry.NewKey[int]("b")

	m := registry.Add(registry.Map{}, k1, 5)

	v, ok := registry.Find(m, k1)
	require.True(t, ok)
	require.Equal(t, 5, v)

	_, ok = registry.Find(m, k2)
	require.False(t, ok)

	// same name, different key: still a distinct slot
	k3 := registry.NewKey[int]("a")
	_, ok = registry.Find(m, k3)
	require.False(t, ok)
}

type endpoint struct {
	Host string
	Port int
}

func TestHeterogeneousValues(t *testing.T) {
	kn := registry.NewKey[int]("retries")
	ks := registry.NewKey[string]("cluster")
	ke := registry.NewKey[endpoint]("seed")

	m := registry.Map{}
	m = registry.Add(m, kn, 3)
	m = registry.Add(m, ks, "eu-west")
	m = registry.Add(m, ke, endpoint{Host: "10.0.0.1", Port: 7000})

	require.Equal(t, 3, m.Len())

	n, ok := registry.Find(m, kn)
	require.True(t, ok)
	require.Equal(t, 3, n)

	s, ok := registry.Find(m, ks)
	require.True(t, ok)
	require.Equal(t, "eu-west", s)

	e, ok := registry.Find(m, ke)
	require.True(t, ok)
	require.Equal(t, endpoint{Host: "10.0.0.1", Port: 7000}, e)
}

func TestAddReplaces(t *testing.T) {
	k := registry.NewKey[string]("leader")

	m := registry.Add(registry.Map{}, k, "n1")
	m = registry.Add(m, k, "n2")

	require.Equal(t, 1, m.Len())
	v, _ := registry.Find(m, k)
	require.Equal(t, "n2", v)
}

func TestPersistence(t *testing.T) {
	k1 := registry.NewKey[int]("a")
	k2 := registry.NewKey[int]("b")

	var empty registry.Map
	m1 := registry.Add(empty, k1, 1)
	m2 := registry.Add(m1, k1, 2)
	m3 := registry.Add(m1, k2, 3)

	// every version still answers for itself
	require.Equal(t, 0, empty.Len())
	require.False(t, registry.Mem(empty, k1))

	v, _ := registry.Find(m1, k1)
	require.Equal(t, 1, v)
	require.False(t, registry.Mem(m1, k2))

	v, _ = registry.Find(m2, k1)
	require.Equal(t, 2, v)

	v, _ = registry.Find(m3, k1)
	require.Equal(t, 1, v)
	v, _ = registry.Find(m3, k2)
	require.Equal(t, 3, v)
}

func TestUpdate(t *testing.T) {
	k := registry.NewKey[int]("hits")
	var m registry.Map

	t.Run("insert", func(t *testing.T) {
		m = registry.Update(m, k, func(v int, ok bool) (int, bool) {
			require.False(t, ok)
			return 1, true
		})
		v, ok := registry.Find(m, k)
		require.True(t, ok)
		require.Equal(t, 1, v)
	})

	t.Run("modify", func(t *testing.T) {
		m = registry.Update(m, k, func(v int, ok bool) (int, bool) {
			require.True(t, ok)
			return v + 1, true
		})
		v, _ := registry.Find(m, k)
		require.Equal(t, 2, v)
	})

	t.Run("delete", func(t *testing.T) {
		prev := m
		m = registry.Update(m, k, func(v int, ok bool) (int, bool) {
			return 0, false
		})
		require.False(t, registry.Mem(m, k))
		require.Equal(t, 0, m.Len())

		// the version before the delete still holds the binding
		require.True(t, registry.Mem(prev, k))
	})

	t.Run("delete absent", func(t *testing.T) {
		m = registry.Update(m, k, func(v int, ok bool) (int, bool) {
			require.False(t, ok)
			return 0, false
		})
		require.Equal(t, 0, m.Len())
	})
}

func TestBindings(t *testing.T) {
	ka := registry.NewKey[int]("a")
	kb := registry.NewKey[string]("b")
	kc := registry.NewKey[bool]("c")

	// insertion order does not matter, creation order does
	m := registry.Map{}
	m = registry.Add(m, kc, true)
	m = registry.Add(m, ka, 1)
	m = registry.Add(m, kb, "x")

	want := []registry.Binding{
		{ID: ka.ID(), Name: "a", Value: 1},
		{ID: kb.ID(), Name: "b", Value: "x"},
		{ID: kc.ID(), Name: "c", Value: true},
	}
	if diff := cmp.Diff(want, m.Bindings()); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroMap(t *testing.T) {
	var m registry.Map
	k := registry.NewKey[int]("a")

	require.Equal(t, 0, m.Len())
	require.Nil(t, m.Bindings())
	require.False(t, registry.Mem(m, k))

	_, ok := registry.Find(m, k)
	require.False(t, ok)
}

func TestUninitializedKey(t *testing.T) {
	require.Panics(t, func() {
		registry.Add(registry.Map{}, registry.Key[int]{}, 1)
	})
	require.Panics(t, func() {
		registry.Find(registry.Map{}, registry.Key[int]{})
	})
}

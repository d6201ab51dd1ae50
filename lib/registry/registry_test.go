package registry_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recbase/recmap/lib/recmap"
	"github.com/recbase/recmap/lib/registry"
)

func TestPublishAndLookup(t *testing.T) {
	r := registry.New()

	m, err := recmap.Of("a", int64(1), "b", int64(2))
	require.NoError(t, err)
	require.NoError(t, r.Publish("config", m))

	// publishing seals the original view
	assert.True(t, m.IsReadOnly())
	assert.Equal(t, 1, r.Size())

	view, ok := r.Lookup("config")
	require.True(t, ok)
	assert.True(t, view.IsReadOnly())
	assert.Equal(t, int64(1), view.GetInt("a"))
	_, err = view.Put("c", int64(3))
	assert.True(t, recmap.IsReadOnly(err))

	// every lookup returns a distinct view onto the same store
	other, ok := r.Lookup("config")
	require.True(t, ok)
	assert.NotSame(t, view, other)
	assert.True(t, view.Equal(other))

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestPublishValidation(t *testing.T) {
	r := registry.New()

	assert.Error(t, r.Publish("", recmap.New()))
	assert.Error(t, r.Publish("x", nil))

	m, err := recmap.Of("a", int64(1))
	require.NoError(t, err)
	require.NoError(t, r.Publish("x", m))

	// double publish under the same name fails, the first map stays
	assert.Error(t, r.Publish("x", recmap.New()))
	view, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), view.GetInt("a"))
}

func TestDrop(t *testing.T) {
	r := registry.New()
	m, err := recmap.Of("a", int64(1))
	require.NoError(t, err)
	require.NoError(t, r.Publish("x", m))

	view, ok := r.Lookup("x")
	require.True(t, ok)

	assert.True(t, r.Drop("x"))
	assert.False(t, r.Drop("x"))
	assert.Equal(t, 0, r.Size())
	_, ok = r.Lookup("x")
	assert.False(t, ok)

	// earlier views keep working after the drop
	assert.Equal(t, int64(1), view.GetInt("a"))
}

func TestNames(t *testing.T) {
	r := registry.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Publish(fmt.Sprintf("map-%d", i), recmap.New()))
	}
	names := r.Names()
	assert.Len(t, names, 5)
	assert.ElementsMatch(t, names, []string{"map-0", "map-1", "map-2", "map-3", "map-4"})
}

func TestConcurrentAccess(t *testing.T) {
	r := registry.New()
	m, err := recmap.Of("shared", int64(42))
	require.NoError(t, err)
	require.NoError(t, r.Publish("shared", m))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				name := fmt.Sprintf("g%d-%d", g, i)
				if err := r.Publish(name, recmap.New()); err != nil {
					t.Errorf("Unexpected error from Publish: %v", err)
					return
				}
				view, ok := r.Lookup("shared")
				if !ok || view.GetInt("shared") != 42 {
					t.Errorf("Expected the shared map to stay readable")
					return
				}
				r.Drop(name)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 1, r.Size())
}

func TestWriteMetrics(t *testing.T) {
	r := registry.New()
	m, err := recmap.Of("a", int64(1))
	require.NoError(t, err)
	require.NoError(t, r.Publish("x", m))
	r.Lookup("x")
	r.Lookup("missing")
	r.Drop("x")

	var buf bytes.Buffer
	r.WriteMetrics(&buf)
	out := buf.String()
	assert.Contains(t, out, `recmap_registry_operations_total{op="publish"} 1`)
	assert.Contains(t, out, `recmap_registry_operations_total{op="lookup"} 1`)
	assert.Contains(t, out, `recmap_registry_operations_total{op="lookup_miss"} 1`)
	assert.Contains(t, out, `recmap_registry_operations_total{op="drop"} 1`)
	assert.Contains(t, out, "recmap_registry_published 0")
}

package registry

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/recbase/recmap/lib/recmap"
)

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Registry is a concurrent catalog of published maps. Publishing seals the
// map, so every map handed out by a registry is immutable and therefore
// safe to read from any number of goroutines. Callers receive read-only
// views and never the registered view itself.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	maps *xsync.MapOf[string, *recmap.Map]

	// operation counters, exposed via WriteMetrics
	set       *metrics.Set
	publishes *metrics.Counter
	lookups   *metrics.Counter
	misses    *metrics.Counter
	drops     *metrics.Counter
}

// New creates an empty registry.
func New() *Registry {
	r := &Registry{
		maps: xsync.NewMapOf[string, *recmap.Map](),
		set:  metrics.NewSet(),
	}
	r.publishes = r.set.GetOrCreateCounter(`recmap_registry_operations_total{op="publish"}`)
	r.lookups = r.set.GetOrCreateCounter(`recmap_registry_operations_total{op="lookup"}`)
	r.misses = r.set.GetOrCreateCounter(`recmap_registry_operations_total{op="lookup_miss"}`)
	r.drops = r.set.GetOrCreateCounter(`recmap_registry_operations_total{op="drop"}`)
	r.set.GetOrCreateGauge(`recmap_registry_published`, func() float64 {
		return float64(r.maps.Size())
	})
	return r
}

// Publish seals the given map and registers it under the given name.
// Sealing is irreversible and happens even if the name is already taken, in
// which case an error is returned and the catalog is unchanged.
func (r *Registry) Publish(name string, m *recmap.Map) error {
	if name == "" {
		return fmt.Errorf("registry: name must not be empty")
	}
	if m == nil {
		return fmt.Errorf("registry: map must not be nil")
	}

	m.Seal()
	if _, loaded := r.maps.LoadOrStore(name, m); loaded {
		return fmt.Errorf("registry: name %q is already published", name)
	}
	r.publishes.Inc()
	return nil
}

// Lookup returns a fresh read-only view of the map published under the
// given name, or false if no such map exists. Every call returns a new
// view; the views share the sealed store.
func (r *Registry) Lookup(name string) (*recmap.Map, bool) {
	m, ok := r.maps.Load(name)
	if !ok {
		r.misses.Inc()
		return nil, false
	}
	r.lookups.Inc()
	return recmap.New().AliasReadOnly(m), true
}

// Drop removes the map published under the given name from the catalog and
// reports whether it was present. Views handed out earlier stay valid, the
// sealed store lives on until the last view releases it.
func (r *Registry) Drop(name string) bool {
	if _, loaded := r.maps.LoadAndDelete(name); !loaded {
		return false
	}
	r.drops.Inc()
	return true
}

// Size returns the number of published maps.
func (r *Registry) Size() int {
	return r.maps.Size()
}

// Names returns a snapshot of all published names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.maps.Size())
	r.maps.Range(func(name string, _ *recmap.Map) bool {
		names = append(names, name)
		return true
	})
	return names
}

// WriteMetrics writes the registry's operation counters in Prometheus text
// format to the given writer.
func (r *Registry) WriteMetrics(w io.Writer) {
	r.set.WritePrometheus(w)
}

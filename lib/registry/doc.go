// Package registry implements a concurrent catalog of sealed maps.
//
// Maps built with lib/recmap are single-goroutine data structures, but once
// sealed their stores become immutable and therefore freely shareable. The
// registry formalizes this handoff: Publish seals a map and files it under a
// name, Lookup hands out fresh read-only views onto the shared store, and
// Drop retires a name without invalidating views already handed out.
//
// The catalog itself is backed by a lock-free concurrent map and keeps
// operation counters that WriteMetrics exposes in Prometheus text format.
//
// Thread-safety: the registry is safe for concurrent use by any number of
// goroutines; the views it returns are safe for concurrent reads because
// the underlying stores are sealed.
package registry

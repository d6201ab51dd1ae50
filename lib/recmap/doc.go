// Package recmap implements a compact associative container for volatile,
// single-process, not-necessarily-typed data, the kind of structure used as
// the in-memory backing of dynamically-typed records (for example parsed
// semi-structured data). It is optimized for small maps on modern CPUs and
// keeps all keys and values in one flat slot array to optimize access.
//
// The package focuses on:
//   - A flat open-addressed slot array with fixed-length probe sequences
//   - Lightweight views that can alias the same backing store
//   - A one-way seal that makes shared data safe for concurrent reads
//   - A mutation-safe traversal protocol (remove, replace, restart, abort)
//   - Pluggable boxing hooks and best-effort kind coercion
//
// Key Components:
//
//   - Map: a view onto a shared store. Views are cheap, a fresh Map
//     allocates nothing until the first insert. Alias makes two views share
//     one store (true sharing), Copy produces an independent structural
//     duplicate, Detach drops the reference. Every view carries its own
//     read-only flag; Seal additionally marks the store itself read-only,
//     which irreversibly forces all sharing views read-only.
//
//   - store: the backing buffer. Pairs live at consecutive even/odd
//     positions. The hash of a key only selects the start index of its
//     probe sequence; the sequence always scans exactly 4+len/1024 even
//     slots, no matter when an empty slot appears. A key is seen as not
//     found after its sequence has been scanned completely. This bounds
//     the worst-case lookup independent of occupancy and removes the need
//     for tombstones: deleted slots are simply nilled. When a probe
//     sequence is exhausted the table doubles and every pair is re-indexed;
//     in the optimal case the table can be filled to 100% without any
//     growth, which is why there is no load factor or any other tuning
//     parameter.
//
//   - Boxer / Kind: every value written passes through a box hook before
//     storage, every value read through an unbox hook (identity by
//     default). Values are carried with an explicit kind (bool, int,
//     float, string, map, absent); narrower numeric categories are widened
//     to int64/float64 on the way in. Typed accessors return documented
//     zero-equivalents on absence or kind mismatch, the Cast* family layers
//     coercion policies on top.
//
//   - ForEach: a synchronous full scan that calls a visitor per live pair.
//     The visitor steers the scan through tagged commands (Continue,
//     RemoveCurrent, ReplaceValue, Restart, ReturnNow) instead of mutating
//     behind the engine's back. Remove-only scans visit every pair exactly
//     once; anything else is best-effort after a compaction.
//
//   - KeyIterator / ValueIterator: forward-only cursors with explicit
//     single-element removal.
//
// Thread-safety: maps are not safe for concurrent use. A sealed store may
// be read from multiple goroutines concurrently; any concurrent mutation,
// or mutation concurrent with iteration, is undefined behavior and must be
// prevented by the caller. There is no locking, no cancellation and no
// timeout concept, every operation is bounded by input size and probe
// length and runs to completion on the caller's goroutine.
//
// Related Packages:
//
// The registry package (github.com/recbase/recmap/lib/registry) provides a
// process-wide, concurrency-safe catalog of sealed maps for sharing
// finished records between goroutines.
//
// The testing package (github.com/recbase/recmap/lib/recmap/testing)
// provides a standardized test suite and benchmarks for the container:
//   - RunMapTests: runs a standardized test suite against a map factory
//   - RunMapBenchmarks: provides performance benchmarks
package recmap

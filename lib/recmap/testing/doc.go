// Package testing provides a reusable conformance suite for the map
// implementation in lib/recmap.
//
// The suite is factory-driven: callers hand RunMapTests a function that
// produces a fresh, empty map and the suite exercises the full surface
// against it (insertion, deletion, growth, sealing, aliasing, iteration
// and traversal). This keeps every configuration of the map, for example
// maps with a custom Boxer installed, testable with a single line.
//
// RunMapBenchmarks is the benchmark counterpart and reports allocations
// for the hot operations.
//
// Example usage:
//
//	func TestMap(t *testing.T) {
//		maptesting.RunMapTests(t, "default", recmap.New)
//	}
package testing

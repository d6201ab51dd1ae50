package testing

import (
	"fmt"
	"testing"

	"github.com/recbase/recmap/lib/recmap"
)

// MapFactory is a function that creates a new empty map instance.
type MapFactory func() *recmap.Map

// RunMapTests runs a comprehensive test suite against a map implementation.
func RunMapTests(t *testing.T, name string, factory MapFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("Growth", func(t *testing.T) {
			testGrowth(t, factory())
		})

		t.Run("Seal", func(t *testing.T) {
			testSeal(t, factory)
		})

		t.Run("Alias&Copy", func(t *testing.T) {
			testAliasCopy(t, factory)
		})

		t.Run("Equal", func(t *testing.T) {
			testEqual(t, factory)
		})

		t.Run("PutAll", func(t *testing.T) {
			testPutAll(t, factory)
		})

		t.Run("Snapshots", func(t *testing.T) {
			testSnapshots(t, factory())
		})

		t.Run("Iterators", func(t *testing.T) {
			testIterators(t, factory())
		})

		t.Run("ForEach", func(t *testing.T) {
			testForEach(t, factory())
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// mustPut inserts a pair and fails the test on any error.
func mustPut(t testing.TB, m *recmap.Map, key, value any) {
	t.Helper()
	if _, err := m.Put(key, value); err != nil {
		t.Fatalf("Unexpected error from Put(%v, %v): %v", key, value, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, m *recmap.Map) {
	if m.Size() != 0 {
		t.Errorf("Expected fresh map to be empty, got size %d", m.Size())
	}
	if !m.IsEmpty() {
		t.Errorf("Expected IsEmpty to be true for fresh map")
	}

	old, err := m.Put("key", "value1")
	if err != nil {
		t.Fatalf("Unexpected error from Put: %v", err)
	}
	if old != nil {
		t.Errorf("Expected no previous value, got %v", old)
	}

	if got := m.Get("key"); got != "value1" {
		t.Errorf("Expected value1, got %v", got)
	}
	if !m.ContainsKey("key") {
		t.Errorf("Expected ContainsKey to be true after Put")
	}
	if !m.ContainsValue("value1") {
		t.Errorf("Expected ContainsValue to be true after Put")
	}

	old, err = m.Put("key", "value2")
	if err != nil {
		t.Fatalf("Unexpected error from Put: %v", err)
	}
	if old != "value1" {
		t.Errorf("Expected previous value value1, got %v", old)
	}
	if m.Size() != 1 {
		t.Errorf("Overwriting a key must not change the size, got %d", m.Size())
	}

	if got := m.Get("nonexistent-key"); got != nil {
		t.Errorf("Expected nil for nonexistent key, got %v", got)
	}
	if m.ContainsKey("nonexistent-key") {
		t.Errorf("Expected ContainsKey to be false for nonexistent key")
	}

	// numeric keys and values are widened to their canonical categories
	mustPut(t, m, int32(7), float32(1.5))
	if got := m.Get(int64(7)); got != float64(1.5) {
		t.Errorf("Expected canonical float64(1.5) under canonical key, got %v", got)
	}

	if _, err := m.Put(nil, "x"); !recmap.IsInvalidArgument(err) {
		t.Errorf("Expected InvalidArgument for nil key, got %v", err)
	}
}

func testDelete(t *testing.T, m *recmap.Map) {
	mustPut(t, m, "a", int64(1))
	mustPut(t, m, "b", int64(2))

	old, err := m.Delete("a")
	if err != nil {
		t.Fatalf("Unexpected error from Delete: %v", err)
	}
	if old != int64(1) {
		t.Errorf("Expected previous value 1, got %v", old)
	}
	if m.Size() != 1 {
		t.Errorf("Expected size 1 after Delete, got %d", m.Size())
	}
	if m.ContainsKey("a") {
		t.Errorf("Expected key a to be gone after Delete")
	}

	// deleting an absent key is a no-op
	old, err = m.Delete("a")
	if err != nil {
		t.Fatalf("Unexpected error from absent-key Delete: %v", err)
	}
	if old != nil {
		t.Errorf("Expected nil from absent-key Delete, got %v", old)
	}
	if m.Size() != 1 {
		t.Errorf("Absent-key Delete must not change size, got %d", m.Size())
	}

	if _, err := m.Delete(nil); !recmap.IsInvalidArgument(err) {
		t.Errorf("Expected InvalidArgument for nil key, got %v", err)
	}
}

func testClear(t *testing.T, m *recmap.Map) {
	for i := 0; i < 100; i++ {
		mustPut(t, m, fmt.Sprintf("key-%d", i), i)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Unexpected error from Clear: %v", err)
	}
	if m.Size() != 0 {
		t.Errorf("Expected size 0 after Clear, got %d", m.Size())
	}
	if m.Get("key-1") != nil {
		t.Errorf("Expected nil after Clear")
	}

	// the cleared map must work normally again
	mustPut(t, m, "fresh", "value")
	if got := m.Get("fresh"); got != "value" {
		t.Errorf("Expected value after re-insert into cleared map, got %v", got)
	}
}

func testGrowth(t *testing.T, m *recmap.Map) {
	// insert well past the minimum capacity and verify nothing is lost
	numKeys := 1000
	for i := 0; i < numKeys; i++ {
		mustPut(t, m, fmt.Sprintf("growth-key-%d", i), int64(i))
	}
	if m.Size() != numKeys {
		t.Errorf("Expected size %d, got %d", numKeys, m.Size())
	}
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("growth-key-%d", i)
		if got := m.GetInt(key); got != int64(i) {
			t.Errorf("Key %s lost across growth: expected %d, got %d", key, i, got)
		}
	}
}

func testSeal(t *testing.T, factory MapFactory) {
	m := factory()
	mustPut(t, m, "a", int64(1))

	// view-local read-only flag
	local := factory().Alias(m)
	local.SetReadOnly()
	if _, err := local.Put("b", int64(2)); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from read-only view, got %v", err)
	}
	// ... but the shared data stays writable through the original view
	mustPut(t, m, "b", int64(2))

	// sealing the store forces every sharing view read-only
	m.Seal()
	other := factory().Alias(m)
	if !other.IsReadOnly() {
		t.Errorf("Expected aliasing view of sealed store to be read-only")
	}
	if _, err := other.Put("c", int64(3)); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly after sealing, got %v", err)
	}
	if _, err := m.Delete("a"); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from Delete after sealing, got %v", err)
	}
	if err := m.Clear(); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from Clear after sealing, got %v", err)
	}

	// failed mutations must leave the state unchanged
	if m.Size() != 2 || m.GetInt("a") != 1 || m.GetInt("b") != 2 {
		t.Errorf("Sealed map state changed by failed mutations")
	}
}

func testAliasCopy(t *testing.T, factory MapFactory) {
	a := factory()
	mustPut(t, a, "x", int64(1))

	// aliasing views observe each other's mutations immediately
	b := factory().Alias(a)
	mustPut(t, b, "y", int64(2))
	if a.GetInt("y") != 2 {
		t.Errorf("Expected mutation through alias to be visible in original")
	}
	mustPut(t, a, "x", int64(10))
	if b.GetInt("x") != 10 {
		t.Errorf("Expected mutation through original to be visible in alias")
	}

	// copies are independent
	c := factory().Copy(a)
	mustPut(t, c, "z", int64(3))
	if a.ContainsKey("z") {
		t.Errorf("Expected copy mutation to be invisible in original")
	}
	if _, err := a.Delete("x"); err != nil {
		t.Fatalf("Unexpected error from Delete: %v", err)
	}
	if !c.ContainsKey("x") {
		t.Errorf("Expected original mutation to be invisible in copy")
	}

	// detaching a view leaves the store and other views untouched
	b.Detach()
	if b.Size() != 0 {
		t.Errorf("Expected detached view to be empty")
	}
	if !a.ContainsKey("y") {
		t.Errorf("Expected store to survive a detach of one view")
	}
}

func testEqual(t *testing.T, factory MapFactory) {
	a := factory()
	b := factory()
	if !a.Equal(b) {
		t.Errorf("Expected two empty maps to be equal")
	}

	mustPut(t, a, "k1", int64(1))
	mustPut(t, a, "k2", "two")
	if a.Equal(b) {
		t.Errorf("Expected maps of different size to be unequal")
	}

	// same pairs inserted in reverse order, physical layout is irrelevant
	mustPut(t, b, "k2", "two")
	mustPut(t, b, "k1", int64(1))
	if !a.Equal(b) {
		t.Errorf("Expected maps with the same pairs to be equal")
	}

	mustPut(t, b, "k1", int64(99))
	if a.Equal(b) {
		t.Errorf("Expected maps with different values to be unequal")
	}
}

func testPutAll(t *testing.T, factory MapFactory) {
	src := factory()
	for i := 0; i < 32; i++ {
		mustPut(t, src, fmt.Sprintf("k%d", i), int64(i))
	}
	dst := factory()
	mustPut(t, dst, "k0", "overwritten")

	if err := dst.PutAll(src); err != nil {
		t.Fatalf("Unexpected error from PutAll: %v", err)
	}
	if !dst.Equal(src) {
		t.Errorf("Expected destination to equal source after PutAll")
	}

	sealed := factory().Seal()
	if err := sealed.PutAll(src); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from PutAll on sealed map, got %v", err)
	}
}

func testSnapshots(t *testing.T, m *recmap.Map) {
	if len(m.Keys()) != 0 || len(m.Values()) != 0 || len(m.Pairs()) != 0 {
		t.Errorf("Expected empty snapshots for empty map")
	}

	mustPut(t, m, "a", int64(1))
	mustPut(t, m, "b", int64(2))

	keys := m.Keys()
	values := m.Values()
	pairs := m.Pairs()
	if len(keys) != 2 || len(values) != 2 || len(pairs) != 4 {
		t.Fatalf("Unexpected snapshot lengths: %d keys, %d values, %d pair elements",
			len(keys), len(values), len(pairs))
	}

	// keys and values line up positionally, pairs alternate
	for i, key := range keys {
		if m.Get(key) != values[i] {
			t.Errorf("Keys/Values misaligned at %d: %v -> %v", i, key, values[i])
		}
		if pairs[2*i] != key || pairs[2*i+1] != values[i] {
			t.Errorf("Pairs misaligned at %d", i)
		}
	}

	// snapshots are fresh slices, not views into the store
	keys[0] = "mutated"
	if !m.ContainsKey("a") || !m.ContainsKey("b") {
		t.Errorf("Mutating a snapshot must not affect the map")
	}
}

func testIterators(t *testing.T, m *recmap.Map) {
	it := m.IterateKeys()
	if it.HasNext() {
		t.Errorf("Expected no next element on empty map")
	}
	if _, err := it.Next(); !recmap.IsNoSuchElement(err) {
		t.Errorf("Expected NoSuchElement from Next on empty map, got %v", err)
	}
	if err := it.Remove(); !recmap.IsNoSuchElement(err) {
		t.Errorf("Expected NoSuchElement from Remove before Next, got %v", err)
	}

	mustPut(t, m, "a", int64(1))
	mustPut(t, m, "b", int64(2))
	mustPut(t, m, "c", int64(3))

	seen := map[any]bool{}
	it = m.IterateKeys()
	for it.HasNext() {
		key, err := it.Next()
		if err != nil {
			t.Fatalf("Unexpected error from Next: %v", err)
		}
		seen[key] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected 3 distinct keys, got %d", len(seen))
	}
	if _, err := it.Next(); !recmap.IsNoSuchElement(err) {
		t.Errorf("Expected NoSuchElement after exhaustion, got %v", err)
	}

	// value iterator with single-element removal
	vit := m.IterateValues()
	sum := int64(0)
	for vit.HasNext() {
		value, err := vit.Next()
		if err != nil {
			t.Fatalf("Unexpected error from Next: %v", err)
		}
		if value == int64(2) {
			if err := vit.Remove(); err != nil {
				t.Fatalf("Unexpected error from Remove: %v", err)
			}
			// double remove of the same pair
			if err := vit.Remove(); !recmap.IsNoSuchElement(err) {
				t.Errorf("Expected NoSuchElement from double Remove, got %v", err)
			}
			continue
		}
		sum += value.(int64)
	}
	if sum != 4 {
		t.Errorf("Expected remaining values to sum to 4, got %d", sum)
	}
	if m.Size() != 2 || m.ContainsKey("b") {
		t.Errorf("Expected iterator Remove to delete pair b")
	}

	// remove on a sealed map
	m.Seal()
	sit := m.IterateKeys()
	if _, err := sit.Next(); err != nil {
		t.Fatalf("Unexpected error from Next: %v", err)
	}
	if err := sit.Remove(); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from Remove on sealed map, got %v", err)
	}
}

func testForEach(t *testing.T, m *recmap.Map) {
	mustPut(t, m, "a", int64(1))
	mustPut(t, m, "b", int64(2))

	// plain accumulation
	result, err := m.ForEach(int64(0), func(_ *recmap.Map, _, value, result any, _ bool) (recmap.Command, error) {
		return recmap.Continue(result.(int64) + value.(int64)), nil
	})
	if err != nil {
		t.Fatalf("Unexpected error from ForEach: %v", err)
	}
	if result != int64(3) {
		t.Errorf("Expected sum 3, got %v", result)
	}

	// early return yields the carried value
	result, err = m.ForEach(int64(0), func(_ *recmap.Map, _, _, _ any, _ bool) (recmap.Command, error) {
		return recmap.ReturnNow(int64(99)), nil
	})
	if err != nil {
		t.Fatalf("Unexpected error from ForEach: %v", err)
	}
	if result != int64(99) {
		t.Errorf("Expected early-return value 99, got %v", result)
	}

	// replace only touches the current value slot
	if _, err = m.ForEach(nil, func(_ *recmap.Map, key, value, _ any, _ bool) (recmap.Command, error) {
		return recmap.ReplaceValue(value.(int64)*10, nil), nil
	}); err != nil {
		t.Fatalf("Unexpected error from ForEach: %v", err)
	}
	if m.GetInt("a") != 10 || m.GetInt("b") != 20 {
		t.Errorf("Expected replaced values 10/20, got %d/%d", m.GetInt("a"), m.GetInt("b"))
	}

	// a remove-only scan visits every originally-present key exactly once
	visits := map[any]int{}
	if _, err = m.ForEach(nil, func(_ *recmap.Map, key, _, _ any, _ bool) (recmap.Command, error) {
		visits[key]++
		return recmap.RemoveCurrent(nil), nil
	}); err != nil {
		t.Fatalf("Unexpected error from ForEach: %v", err)
	}
	if len(visits) != 2 || visits["a"] != 1 || visits["b"] != 1 {
		t.Errorf("Expected each key visited exactly once, got %v", visits)
	}
	if m.Size() != 0 {
		t.Errorf("Expected empty map after remove-only scan, got size %d", m.Size())
	}

	// visitor errors are wrapped into VisitorFailed
	mustPut(t, m, "x", int64(1))
	_, err = m.ForEach(nil, func(_ *recmap.Map, _, _, _ any, _ bool) (recmap.Command, error) {
		return recmap.Command{}, fmt.Errorf("boom")
	})
	if !recmap.IsVisitorFailed(err) {
		t.Errorf("Expected VisitorFailed, got %v", err)
	}

	// mutating commands fail with ReadOnly on a sealed map
	m.Seal()
	_, err = m.ForEach(nil, func(_ *recmap.Map, _, _, _ any, _ bool) (recmap.Command, error) {
		return recmap.RemoveCurrent(nil), nil
	})
	if !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from remove command on sealed map, got %v", err)
	}
}

func testCollisionHandling(t *testing.T, m *recmap.Map) {
	prefix := "collision-test-"
	numKeys := 1000

	for i := 0; i < numKeys; i++ {
		mustPut(t, m, fmt.Sprintf("%s%d", prefix, i), int64(i))
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		if got := m.GetInt(key); got != int64(i) {
			t.Errorf("Value for key %s does not match: expected %d, got %d", key, i, got)
		}
	}

	for i := 0; i < numKeys; i += 2 {
		if _, err := m.Delete(fmt.Sprintf("%s%d", prefix, i)); err != nil {
			t.Fatalf("Unexpected error from Delete: %v", err)
		}
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		exists := m.ContainsKey(key)
		if i%2 == 0 && exists {
			t.Errorf("Key %s should be deleted", key)
		}
		if i%2 == 1 && !exists {
			t.Errorf("Key %s should still exist", key)
		}
	}
}

func testEdgeCases(t *testing.T, m *recmap.Map) {
	// the empty string is a regular key
	mustPut(t, m, "", "value for empty key")
	if got := m.Get(""); got != "value for empty key" {
		t.Errorf("Empty key not found after Put")
	}

	// nil values are storable, the pair stays live
	mustPut(t, m, "nil-value-key", nil)
	if !m.ContainsKey("nil-value-key") {
		t.Errorf("Expected pair with nil value to stay live")
	}
	if m.Get("nil-value-key") != nil {
		t.Errorf("Expected nil value")
	}

	// odd-length constructor input is rejected
	if _, err := recmap.Of("lonely-key"); !recmap.IsInvalidArgument(err) {
		t.Errorf("Expected InvalidArgument for odd-length pair sequence, got %v", err)
	}

	// a nil key skips its value instead of failing
	ofMap, err := recmap.Of(nil, "skipped", "kept", int64(1))
	if err != nil {
		t.Fatalf("Unexpected error from Of: %v", err)
	}
	if ofMap.Size() != 1 || ofMap.GetInt("kept") != 1 {
		t.Errorf("Expected nil key to skip its value, got size %d", ofMap.Size())
	}

	// large keys
	largeKey := string(make([]byte, 1000))
	mustPut(t, m, largeKey, "value for large key")
	if got := m.Get(largeKey); got != "value for large key" {
		t.Errorf("Large key not found after Put")
	}
}

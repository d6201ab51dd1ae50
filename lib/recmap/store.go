package recmap

import "math/bits"

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// minCapacity is the smallest slot array: two key-value pairs.
	minCapacity = 4
)

// bucketSize returns the fixed number of even slots every probe sequence
// scans, given the length of the slot array. With a growing table we cannot
// avoid more hash collisions, so the tolerated collision count grows by one
// for every further 1024 slots. A probe always scans exactly this many slots
// no matter when an empty slot appears, which bounds the worst-case lookup
// cost independent of occupancy and makes tombstones unnecessary.
func bucketSize(length int) int {
	return 4 + (length >> 10)
}

// roundPow2 rounds n up to a power of two, minimum minCapacity.
func roundPow2(n int) int {
	if n <= minCapacity {
		return minCapacity
	}
	return 1 << bits.Len(uint(n-1))
}

// --------------------------------------------------------------------------
// Store (the shared backing buffer of one or more Map views)
// --------------------------------------------------------------------------

// store is the mutable backing buffer a Map is a view on. Key-value pairs
// live at consecutive even/odd positions of a flat slot array whose length
// is always a power of two (>= 4). A pair is empty iff its key slot is nil;
// the value slot of an empty pair is always nil. None of the store methods
// check the sealed flag, that is the job of the view.
type store struct {
	// slots holds the pairs, key at 2i, value at 2i+1
	slots []any
	// size is the number of live pairs
	size int
	// mask is len(slots)-1 with bit 0 forced to 0, so masked indices
	// always land on a key slot
	mask int
	// sealed marks the store permanently read-only for all views
	sealed bool
}

// newStore creates a store with at least the given slot array size.
func newStore(size int) *store {
	size = roundPow2(size)
	return &store{
		slots: make([]any, size),
		mask:  (size - 1) &^ 1,
	}
}

// findKey returns the slot index of the given key or -1 if the key is not
// contained. The key is seen as not found once its probe sequence has been
// scanned completely.
func (s *store) findKey(key any) int {
	slots := s.slots
	i := int(hashKey(key)) & s.mask
	for m := bucketSize(len(slots)); m > 0; m-- {
		if k := slots[i]; k != nil && valueEqual(k, key) {
			return i
		}
		i = (i + 2) & s.mask
	}
	return -1
}

// findValue returns the slot index of the next occurrence of value at or
// after the value index start (odd), or -1 if there is none. The returned
// index identifies the value slot and is therefore always odd.
func (s *store) findValue(value any, start int) int {
	slots := s.slots
	if start < 0 || start >= len(slots) {
		return -1
	}
	for i := start - 1; i < len(slots); i += 2 {
		if slots[i] != nil && valueEqual(value, slots[i+1]) {
			return i + 1
		}
	}
	return -1
}

// findNextKey returns the index of the next live pair at or after the key
// index start (even), or -1 if no further live pair exists.
func (s *store) findNextKey(start int) int {
	slots := s.slots
	if start < 0 || start >= len(slots) {
		return -1
	}
	for i := start; i < len(slots); i += 2 {
		if slots[i] != nil {
			return i
		}
	}
	return -1
}

// indexForInsert returns the slot index where the given key is stored or,
// if the key is not yet contained, the index of the first empty slot of its
// probe sequence. It returns -1 only if the whole probe sequence is occupied
// by other keys (bucket exhaustion), in which case the slot array must grow
// before the key can be inserted.
func (s *store) indexForInsert(key any) int {
	slots := s.slots
	firstEmpty := -1
	i := int(hashKey(key)) & s.mask
	for m := bucketSize(len(slots)); m > 0; m-- {
		k := slots[i]
		if k == nil {
			if firstEmpty < 0 {
				firstEmpty = i
			}
		} else if valueEqual(k, key) {
			return i
		}
		i = (i + 2) & s.mask
	}
	return firstEmpty
}

// compact re-inserts every live pair into a fresh slot array of at least
// minSize slots (rounded up to a power of two). If any pair cannot be
// placed because even the new array exhausts its probe sequence, the
// candidate size is doubled and the whole rehash restarts from the original
// pairs. This is the only growth mechanism, there is no load factor.
func (s *store) compact(minSize int) {
	old := s.slots
	minSize = roundPow2(minSize)

resize:
	for {
		slots := make([]any, minSize)
		s.slots = slots
		s.mask = (minSize - 1) &^ 1
		for i := 0; i < len(old); i += 2 {
			key := old[i]
			if key == nil {
				continue
			}
			j := s.indexForInsert(key)
			if j < 0 {
				// too many collisions even in the new array
				minSize <<= 1
				continue resize
			}
			slots[j] = key
			slots[j+1] = old[i+1]
		}
		return
	}
}

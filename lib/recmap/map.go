package recmap

// --------------------------------------------------------------------------
// Map (a view onto a shared store)
// --------------------------------------------------------------------------

// Map is a lightweight view onto a shared store. Several views may alias the
// same store (mutations through one are visible through all), and every view
// carries its own read-only flag in addition to the store's seal.
//
// A fresh Map references no store at all and allocates nothing; the first
// insert lazily creates a minimum-capacity store. The store is released to
// the garbage collector once no view references it.
//
// Thread-safety: a Map is not safe for concurrent use. Only after the store
// has been sealed (see Seal) may multiple goroutines read it concurrently.
type Map struct {
	data     *store
	readOnly bool
	boxer    Boxer
}

// New creates a new empty map. No memory is allocated for pairs until the
// first one is added.
func New() *Map {
	return &Map{}
}

// Of creates a map from an alternating key/value sequence. The sequence must
// have even length; a nil key causes its following value to be skipped.
func Of(pairs ...any) (*Map, error) {
	if len(pairs)&1 == 1 {
		return nil, errInvalidArg("of", "pairs must alternate key and value (even length)")
	}
	m := New()
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		if key == nil {
			continue
		}
		if _, err := m.Put(key, pairs[i+1]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// OfKinds creates a map like Of but additionally checks every key and
// non-nil value against the expected kinds, failing with CastFailed on the
// first mismatch. Kinds are checked after canonical widening, so e.g. an
// int32 key satisfies KindInt.
func OfKinds(keyKind, valueKind Kind, pairs ...any) (*Map, error) {
	if len(pairs)&1 == 1 {
		return nil, errInvalidArg("ofKinds", "pairs must alternate key and value (even length)")
	}
	m := New()
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		if key == nil {
			continue
		}
		value := pairs[i+1]
		if keyKind != KindAbsent && KindOf(Canonical(key)) != keyKind {
			return nil, errCastFailed("ofKinds", key, keyKind)
		}
		if value != nil && valueKind != KindAbsent && KindOf(Canonical(value)) != valueKind {
			return nil, errCastFailed("ofKinds", value, valueKind)
		}
		if _, err := m.Put(key, value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// --------------------------------------------------------------------------
// Boxing integration
// --------------------------------------------------------------------------

// SetBoxer installs the boxing hooks for this view. A nil boxer restores the
// identity default. Returns the map for chaining.
func (m *Map) SetBoxer(b Boxer) *Map {
	m.boxer = b
	return m
}

func (m *Map) boxKey(key any) any {
	if m.boxer == nil {
		return key
	}
	return m.boxer.BoxKey(key)
}

func (m *Map) unboxKey(key any) any {
	if m.boxer == nil {
		return key
	}
	return m.boxer.UnboxKey(key)
}

func (m *Map) boxValue(value any) any {
	if m.boxer == nil {
		return value
	}
	return m.boxer.BoxValue(value)
}

func (m *Map) unboxValue(value any) any {
	if m.boxer == nil {
		return value
	}
	return m.boxer.UnboxValue(value)
}

// --------------------------------------------------------------------------
// Read-Only Handling
// --------------------------------------------------------------------------

// IsReadOnly reports whether this view refuses mutations, either because its
// own read-only flag is set or because the underlying store is sealed.
func (m *Map) IsReadOnly() bool {
	return m.readOnly || (m.data != nil && m.data.sealed)
}

// SetReadOnly marks only this view read-only. Other views aliasing the same
// store keep their write access. Returns the map for chaining.
func (m *Map) SetReadOnly() *Map {
	m.readOnly = true
	return m
}

// Seal marks this view and the underlying store read-only. Sealing the store
// is irreversible and forces every view aliasing it to become read-only,
// which in turn makes concurrent read access to the data safe. Returns the
// map for chaining.
func (m *Map) Seal() *Map {
	m.readOnly = true
	if m.data != nil {
		m.data.sealed = true
	}
	return m
}

// --------------------------------------------------------------------------
// Lifecycle: Alias, Copy, Detach
// --------------------------------------------------------------------------

// Alias makes this view reference the other view's store directly. This is
// true sharing: a mutation through either view is immediately visible
// through both. The other view's read-only flag is carried over. A nil
// other detaches this view. Returns the map for chaining.
func (m *Map) Alias(other *Map) *Map {
	if other == nil {
		m.Detach()
		return m
	}
	m.data = other.data
	m.readOnly = other.readOnly
	return m
}

// AliasReadOnly is Alias with this view additionally forced read-only. The
// store itself is not sealed, so other views may still mutate the shared
// data. Returns the map for chaining.
func (m *Map) AliasReadOnly(other *Map) *Map {
	m.Alias(other)
	m.readOnly = true
	return m
}

// Copy makes this view reference an independent structural duplicate of the
// other view's store. The slot array is copied element for element; the
// values themselves are not cloned, so mutating a stored mutable value is
// visible through both maps, while inserting or deleting pairs is not. The
// copy is always writable. Returns the map for chaining.
func (m *Map) Copy(other *Map) *Map {
	if other == nil || other.data == nil {
		m.data = nil
	} else {
		src := other.data
		dst := &store{
			slots: make([]any, len(src.slots)),
			size:  src.size,
			mask:  src.mask,
		}
		copy(dst.slots, src.slots)
		m.data = dst
	}
	m.readOnly = false
	return m
}

// Detach drops this view's store reference and clears its read-only flag.
// The store itself is untouched, other aliasing views are unaffected.
func (m *Map) Detach() {
	m.data = nil
	m.readOnly = false
}

// --------------------------------------------------------------------------
// Queries
// --------------------------------------------------------------------------

// Size returns the number of live key-value pairs.
func (m *Map) Size() int {
	if m.data == nil {
		return 0
	}
	return m.data.size
}

// IsEmpty reports whether the map holds no pairs.
func (m *Map) IsEmpty() bool {
	return m.Size() == 0
}

// ContainsKey reports whether the map contains the given key. A nil key is
// never contained.
func (m *Map) ContainsKey(key any) bool {
	if key == nil || m.data == nil {
		return false
	}
	return m.data.findKey(m.boxKey(Canonical(key))) >= 0
}

// ContainsValue reports whether at least one live pair holds the given
// value (by value-equality).
func (m *Map) ContainsValue(value any) bool {
	return m.data != nil && m.data.findValue(m.boxValue(Canonical(value)), 1) >= 0
}

// Get returns the value stored for the given key or nil if the key is
// absent. Get never mutates the map.
func (m *Map) Get(key any) any {
	data := m.data
	if key == nil || data == nil || data.size == 0 {
		return nil
	}
	index := data.findKey(m.boxKey(Canonical(key)))
	if index < 0 {
		return nil
	}
	return m.unboxValue(data.slots[index+1])
}

// --------------------------------------------------------------------------
// Mutations
// --------------------------------------------------------------------------

// Put inserts or updates the pair for the given key and returns the
// previous value (nil if the key was absent). If the key's probe sequence
// is exhausted, the store is grown and compacted until the pair fits.
func (m *Map) Put(key, value any) (any, error) {
	if key == nil {
		return nil, errInvalidArg("put", "key must not be nil")
	}
	if m.IsReadOnly() {
		return nil, errReadOnly("put")
	}

	data := m.data
	if data == nil {
		data = newStore(minCapacity)
		m.data = data
	}

	boxedKey := m.boxKey(Canonical(key))
	index := data.indexForInsert(boxedKey)
	for index < 0 {
		// bucket exhaustion, double until the pair fits
		data.compact(len(data.slots) << 1)
		index = data.indexForInsert(boxedKey)
	}

	slots := data.slots
	if slots[index] == nil {
		slots[index] = boxedKey
		data.size++
	}
	oldValue := m.unboxValue(slots[index+1])
	slots[index+1] = m.boxValue(Canonical(value))
	return oldValue, nil
}

// PutOrDelete inserts or updates the pair if value is non-nil and deletes
// the key otherwise. Returns the previous value either way.
func (m *Map) PutOrDelete(key, value any) (any, error) {
	if value == nil {
		return m.Delete(key)
	}
	return m.Put(key, value)
}

// Delete removes the pair for the given key and returns the previous value.
// Deleting an absent key is a no-op returning nil. The slot array never
// shrinks on delete.
func (m *Map) Delete(key any) (any, error) {
	if key == nil {
		return nil, errInvalidArg("delete", "key must not be nil")
	}
	if m.IsReadOnly() {
		return nil, errReadOnly("delete")
	}
	data := m.data
	if data == nil || data.size == 0 {
		return nil, nil
	}

	index := data.findKey(m.boxKey(Canonical(key)))
	if index < 0 {
		return nil, nil
	}
	slots := data.slots
	slots[index] = nil
	oldValue := slots[index+1]
	slots[index+1] = nil
	data.size--
	return m.unboxValue(oldValue), nil
}

// Clear removes all pairs by resetting the store to an empty
// minimum-capacity slot array.
func (m *Map) Clear() error {
	if m.IsReadOnly() {
		return errReadOnly("clear")
	}
	if m.data != nil {
		m.data.slots = make([]any, minCapacity)
		m.data.mask = (minCapacity - 1) &^ 1
		m.data.size = 0
	}
	return nil
}

// PutAll applies Put for every pair of the other map, in the other map's
// physical slot order. There is no partial-application guarantee beyond
// that order.
func (m *Map) PutAll(other *Map) error {
	if m.IsReadOnly() {
		return errReadOnly("putAll")
	}
	if other == nil || other.data == nil {
		return nil
	}
	slots := other.data.slots
	for i := 0; i < len(slots); i += 2 {
		key := slots[i]
		if key == nil {
			continue
		}
		if _, err := m.Put(other.unboxKey(key), other.unboxValue(slots[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Equality
// --------------------------------------------------------------------------

// Equal reports whether both maps hold the same number of pairs and every
// key of this map is present in the other with a value-equal counterpart.
// Physical slot order is irrelevant. A nil other equals only an empty map.
func (m *Map) Equal(other *Map) bool {
	thisData := m.data
	if thisData == nil || thisData.size == 0 {
		return other == nil || other.Size() == 0
	}
	if other == nil || thisData.size != other.Size() {
		return false
	}

	slots := thisData.slots
	for i := 0; i < len(slots); i += 2 {
		key := slots[i]
		if key == nil {
			continue
		}
		unboxedKey := m.unboxKey(key)
		if !other.ContainsKey(unboxedKey) {
			return false
		}
		if !valueEqual(m.unboxValue(slots[i+1]), other.Get(unboxedKey)) {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Snapshot Extraction
// --------------------------------------------------------------------------

// Keys returns a newly allocated slice with all keys. The order is the
// physical probe order and not stable across structural changes.
func (m *Map) Keys() []any {
	data := m.data
	if data == nil || data.size == 0 {
		return []any{}
	}
	keys := make([]any, 0, data.size)
	for i := 0; i < len(data.slots); i += 2 {
		if key := data.slots[i]; key != nil {
			keys = append(keys, m.unboxKey(key))
		}
	}
	return keys
}

// Values returns a newly allocated slice with all values, in the same order
// as Keys.
func (m *Map) Values() []any {
	data := m.data
	if data == nil || data.size == 0 {
		return []any{}
	}
	values := make([]any, 0, data.size)
	for i := 0; i < len(data.slots); i += 2 {
		if data.slots[i] != nil {
			values = append(values, m.unboxValue(data.slots[i+1]))
		}
	}
	return values
}

// Pairs returns a newly allocated slice with all pairs in alternating
// key,value,key,value,... order.
func (m *Map) Pairs() []any {
	data := m.data
	if data == nil || data.size == 0 {
		return []any{}
	}
	pairs := make([]any, 0, data.size*2)
	for i := 0; i < len(data.slots); i += 2 {
		if key := data.slots[i]; key != nil {
			pairs = append(pairs, m.unboxKey(key), m.unboxValue(data.slots[i+1]))
		}
	}
	return pairs
}

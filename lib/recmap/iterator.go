package recmap

// --------------------------------------------------------------------------
// Cursor Iterators
// --------------------------------------------------------------------------

// cursor is the shared state of the key and value iterators. The position
// starts before the first slot and only ever moves forward.
type cursor struct {
	m       *Map
	current int
}

// hasNext probes for a live pair at or after the next cursor position.
func (c *cursor) hasNext() bool {
	data := c.m.data
	return data != nil && data.findNextKey(c.current+2) >= 0
}

// advance moves the cursor to the next live pair and returns its key index,
// or an error if no pair remains.
func (c *cursor) advance() (int, error) {
	data := c.m.data
	if data == nil {
		return -1, errNoSuchElement("next")
	}
	next := data.findNextKey(c.current + 2)
	if next < 0 {
		return -1, errNoSuchElement("next")
	}
	c.current = next
	return next, nil
}

// remove deletes the pair at the current cursor position in place.
func (c *cursor) remove() error {
	if c.current < 0 {
		return errNoSuchElement("remove")
	}
	data := c.m.data
	if data == nil {
		return errNoSuchElement("remove")
	}
	slots := data.slots
	if c.current >= len(slots) {
		return errNoSuchElement("remove")
	}
	if c.m.IsReadOnly() {
		return errReadOnly("remove")
	}
	if slots[c.current] == nil {
		return errNoSuchElement("remove")
	}
	slots[c.current] = nil
	slots[c.current+1] = nil
	data.size--
	return nil
}

// KeyIterator iterates the keys of a map in physical probe order.
type KeyIterator struct {
	cursor
}

// IterateKeys returns a forward-only iterator over the map's keys.
func (m *Map) IterateKeys() *KeyIterator {
	return &KeyIterator{cursor{m: m, current: -2}}
}

// HasNext reports whether another key remains.
func (it *KeyIterator) HasNext() bool {
	return it.hasNext()
}

// Next advances to the next live pair and returns its unboxed key. It fails
// with NoSuchElement when the iterator is exhausted.
func (it *KeyIterator) Next() (any, error) {
	index, err := it.advance()
	if err != nil {
		return nil, err
	}
	return it.m.unboxKey(it.m.data.slots[index]), nil
}

// Remove deletes the pair at the current position. It fails with ReadOnly
// if the map is sealed and with NoSuchElement if the cursor is unset, out
// of range or the pair was already removed.
func (it *KeyIterator) Remove() error {
	return it.remove()
}

// ValueIterator iterates the values of a map in physical probe order.
type ValueIterator struct {
	cursor
}

// IterateValues returns a forward-only iterator over the map's values.
func (m *Map) IterateValues() *ValueIterator {
	return &ValueIterator{cursor{m: m, current: -2}}
}

// HasNext reports whether another value remains.
func (it *ValueIterator) HasNext() bool {
	return it.hasNext()
}

// Next advances to the next live pair and returns its unboxed value. It
// fails with NoSuchElement when the iterator is exhausted.
func (it *ValueIterator) Next() (any, error) {
	index, err := it.advance()
	if err != nil {
		return nil, err
	}
	return it.m.unboxValue(it.m.data.slots[index+1]), nil
}

// Remove deletes the pair at the current position. It fails with ReadOnly
// if the map is sealed and with NoSuchElement if the cursor is unset, out
// of range or the pair was already removed.
func (it *ValueIterator) Remove() error {
	return it.remove()
}

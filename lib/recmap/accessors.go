package recmap

// --------------------------------------------------------------------------
// Typed Accessors
// --------------------------------------------------------------------------
//
// Typed accessors unbox generically and return a documented zero-equivalent
// default when the key is absent OR the stored value's kind does not match.
// The *Or variants return the explicit default under the same condition.
// Absence and kind-mismatch are not distinguished here; use ContainsKey to
// tell them apart.

// GetBool returns the value for key if it is a bool; false otherwise.
func (m *Map) GetBool(key any) bool {
	return m.GetBoolOr(key, false)
}

// GetBoolOr returns the value for key if it is a bool; def otherwise.
func (m *Map) GetBoolOr(key any, def bool) bool {
	if v, ok := m.Get(key).(bool); ok {
		return v
	}
	return def
}

// GetInt returns the value for key if it is an integer; 0 otherwise.
func (m *Map) GetInt(key any) int64 {
	return m.GetIntOr(key, 0)
}

// GetIntOr returns the value for key if it is an integer; def otherwise.
// Narrower integer categories never occur in storage, every integer is
// widened to int64 on the way in.
func (m *Map) GetIntOr(key any, def int64) int64 {
	if v, ok := m.Get(key).(int64); ok {
		return v
	}
	return def
}

// GetFloat returns the value for key if it is a float; 0.0 otherwise.
func (m *Map) GetFloat(key any) float64 {
	return m.GetFloatOr(key, 0)
}

// GetFloatOr returns the value for key if it is a float; def otherwise. An
// integer value is widened to float64 rather than treated as a mismatch.
func (m *Map) GetFloatOr(key any, def float64) float64 {
	switch v := m.Get(key).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return def
	}
}

// GetString returns the value for key if it is a string; "" otherwise.
func (m *Map) GetString(key any) string {
	return m.GetStringOr(key, "")
}

// GetStringOr returns the value for key if it is a string; def otherwise.
func (m *Map) GetStringOr(key any, def string) string {
	if v, ok := m.Get(key).(string); ok {
		return v
	}
	return def
}

// GetMap returns the value for key if it is a *Map; nil otherwise.
func (m *Map) GetMap(key any) *Map {
	return m.GetMapOr(key, nil)
}

// GetMapOr returns the value for key if it is a *Map; def otherwise.
func (m *Map) GetMapOr(key any, def *Map) *Map {
	if v, ok := m.Get(key).(*Map); ok {
		return v
	}
	return def
}

// --------------------------------------------------------------------------
// Typed Put Helpers
// --------------------------------------------------------------------------

// PutBool stores a bool value for key and returns the previous value.
func (m *Map) PutBool(key any, value bool) (any, error) {
	return m.Put(key, value)
}

// PutInt stores an integer value for key and returns the previous value.
func (m *Map) PutInt(key any, value int64) (any, error) {
	return m.Put(key, value)
}

// PutFloat stores a float value for key and returns the previous value.
func (m *Map) PutFloat(key any, value float64) (any, error) {
	return m.Put(key, value)
}

// PutString stores a string value for key and returns the previous value.
func (m *Map) PutString(key any, value string) (any, error) {
	return m.Put(key, value)
}

// --------------------------------------------------------------------------
// Coercion
// --------------------------------------------------------------------------

// Cast coerces a value to the requested kind. A nil value passes through
// unchanged and a value already matching the target kind is returned
// unchanged, which also covers the map-to-map case: two maps share by
// reference (alias), they are never converted deeply. Narrower numeric
// categories are widened into the canonical representation first. All other
// combinations fail with CastFailed; in particular string-to-number,
// number-to-string and sequence coercions are intentionally not implemented
// and remain an extension point.
func Cast(value any, target Kind) (any, error) {
	if target == KindAbsent || target > KindOpaque {
		return nil, errInvalidArg("cast", "target kind must name a value kind")
	}
	if value == nil {
		return nil, nil
	}
	canonical := Canonical(value)
	if KindOf(canonical) == target {
		return canonical, nil
	}
	return nil, errCastFailed("cast", value, target)
}

// zeroOf materializes a fresh default instance of the given kind.
func zeroOf(target Kind) (any, bool) {
	switch target {
	case KindBool:
		return false, true
	case KindInt:
		return int64(0), true
	case KindFloat:
		return float64(0), true
	case KindString:
		return "", true
	case KindMap:
		return New(), true
	default:
		return nil, false
	}
}

// CastAndGetOrThrow coerces the value stored for key to the target kind,
// writes the coerced value back and returns it. A nil (or absent) value is
// returned as nil without any coercion. Coercion failure propagates as
// CastFailed; the write-back fails with ReadOnly on a sealed map.
func (m *Map) CastAndGetOrThrow(key any, target Kind) (any, error) {
	value := m.Get(key)
	if value == nil {
		return nil, nil
	}
	if KindOf(value) == target {
		return value, nil
	}
	if m.IsReadOnly() {
		return nil, errReadOnly("castAndGetOrThrow")
	}
	cast, err := Cast(value, target)
	if err != nil {
		return nil, errCastFailed("castAndGetOrThrow", value, target)
	}
	if _, err := m.Put(key, cast); err != nil {
		return nil, err
	}
	return m.Get(key), nil
}

// CastAndGet is CastAndGetOrThrow with the coercion failure absorbed: if the
// value cannot be coerced, a nil value is written back and nil is returned.
func (m *Map) CastAndGet(key any, target Kind) (any, error) {
	value := m.Get(key)
	if value == nil {
		return nil, nil
	}
	if KindOf(value) == target {
		return value, nil
	}
	if m.IsReadOnly() {
		return nil, errReadOnly("castAndGet")
	}
	cast, err := Cast(value, target)
	if err != nil {
		// coercion failure degrades to an absent value
		if _, err := m.Put(key, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if _, err := m.Put(key, cast); err != nil {
		return nil, err
	}
	return m.Get(key), nil
}

// CastAndGetOrCreate returns the value stored for key if it already matches
// the target kind. Otherwise a coercion is attempted and, failing that, a
// fresh default instance of the target kind is materialized; either result
// is written back and returned. CastFailed is only raised if no default
// instance exists for the target kind. Use this to obtain a guaranteed
// value of the desired kind, e.g. a nested map to fill in.
func (m *Map) CastAndGetOrCreate(key any, target Kind) (any, error) {
	value := m.Get(key)
	if value != nil && KindOf(value) == target {
		return value, nil
	}
	if m.IsReadOnly() {
		return nil, errReadOnly("castAndGetOrCreate")
	}
	cast, err := Cast(value, target)
	if err != nil || cast == nil {
		fresh, ok := zeroOf(target)
		if !ok {
			return nil, errCastFailed("castAndGetOrCreate", value, target)
		}
		cast = fresh
	}
	if _, err := m.Put(key, cast); err != nil {
		return nil, err
	}
	return m.Get(key), nil
}

// GetAndCast returns the value for key coerced to the target kind or nil if
// the key is absent or the coercion fails. Nothing is written back.
func (m *Map) GetAndCast(key any, target Kind) any {
	cast, err := Cast(m.Get(key), target)
	if err != nil {
		return nil
	}
	return cast
}

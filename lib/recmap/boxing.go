package recmap

import (
	"fmt"
	"math"
	"reflect"
)

// --------------------------------------------------------------------------
// Value Kinds
// --------------------------------------------------------------------------

// Kind is the explicit runtime category of a stored value. Narrow numeric
// categories are never stored directly: every integer category is widened to
// int64 (KindInt) and every floating category to float64 (KindFloat) before
// storage, so a Kind always identifies the canonical representation.
type Kind uint8

const (
	KindAbsent Kind = iota // nil / no value
	KindBool
	KindInt    // canonical int64
	KindFloat  // canonical float64
	KindString // canonical string
	KindMap    // a *Map value
	KindOpaque // any value outside the canonical model
)

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindMap:
		return "Map"
	case KindOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// KindOf returns the kind of a canonical value. Non-canonical numeric types
// (int32, float32, ...) must be passed through Canonical first; otherwise
// they report KindOpaque.
func KindOf(value any) Kind {
	switch value.(type) {
	case nil:
		return KindAbsent
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	case *Map:
		return KindMap
	default:
		return KindOpaque
	}
}

// Canonical widens a value into its canonical stored representation. All
// integer categories (including rune and byte) become int64, all floating
// categories become float64. Every other value is returned unchanged.
func Canonical(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}

// --------------------------------------------------------------------------
// Boxing Hooks
// --------------------------------------------------------------------------

// Boxer converts between the canonical stored representation and the values
// seen by callers. Every value written into a map passes through BoxValue
// before it is stored and every value read passes through UnboxValue before
// it is returned; keys pass through BoxKey and UnboxKey the same way. The
// default is the identity transformation.
//
// A Boxer allows callers to intern strings, wrap values into domain types or
// keep reference-counted handles without touching the storage engine. The
// hooks may be invoked multiple times for the same value and must therefore
// be idempotent.
type Boxer interface {
	BoxKey(key any) any
	UnboxKey(key any) any
	BoxValue(value any) any
	UnboxValue(value any) any
}

// identityBoxer is the default Boxer; it performs no conversion.
type identityBoxer struct{}

func (identityBoxer) BoxKey(key any) any       { return key }
func (identityBoxer) UnboxKey(key any) any     { return key }
func (identityBoxer) BoxValue(value any) any   { return value }
func (identityBoxer) UnboxValue(value any) any { return value }

// the shared default instance, boxer==nil on a Map means this one
var defaultBoxer Boxer = identityBoxer{}

// --------------------------------------------------------------------------
// Equality and Hashing
// --------------------------------------------------------------------------

// valueEqual compares two stored values by value-equality. Nested maps are
// compared with Equal, non-comparable values fall back to reflection.
func valueEqual(a, b any) bool {
	if am, ok := a.(*Map); ok {
		bm, ok := b.(*Map)
		return ok && am.Equal(bm)
	}
	if _, ok := b.(*Map); ok {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// hashString hashes a string with FNV-1a, which is fast and distributes well.
func hashString(s string) uint64 {
	hash := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= fnvPrime64
	}
	return hash
}

// hashUint64 hashes the 8 bytes of v with FNV-1a.
func hashUint64(v uint64) uint64 {
	hash := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		hash ^= v & 0xFF
		hash *= fnvPrime64
		v >>= 8
	}
	return hash
}

// hashKey returns the hash of a canonical key. The hash only selects the
// start index of a probe sequence, key identity is always decided by
// valueEqual.
func hashKey(key any) uint64 {
	switch k := key.(type) {
	case string:
		return hashString(k)
	case int64:
		return hashUint64(uint64(k))
	case float64:
		return hashUint64(math.Float64bits(k))
	case bool:
		if k {
			return hashUint64(1)
		}
		return hashUint64(0)
	default:
		// uncommon key types pay the formatting price
		return hashString(fmt.Sprintf("%T/%v", key, key))
	}
}

package recmap

import "testing"

func TestCanonical(t *testing.T) {
	cases := []struct {
		in       any
		expected any
	}{
		{int(7), int64(7)},
		{int8(-1), int64(-1)},
		{int16(300), int64(300)},
		{int32(1 << 20), int64(1 << 20)},
		{uint(7), int64(7)},
		{uint8(255), int64(255)},
		{uint16(65535), int64(65535)},
		{uint32(1 << 30), int64(1 << 30)},
		{uint64(42), int64(42)},
		{float32(1.5), float64(1.5)},
		{int64(7), int64(7)},
		{float64(2.5), float64(2.5)},
		{"text", "text"},
		{true, true},
		{nil, nil},
	}
	for _, c := range cases {
		if got := Canonical(c.in); got != c.expected {
			t.Errorf("Canonical(%T %v): expected %T %v, got %T %v",
				c.in, c.in, c.expected, c.expected, got, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		in       any
		expected Kind
	}{
		{nil, KindAbsent},
		{true, KindBool},
		{int64(1), KindInt},
		{float64(1), KindFloat},
		{"", KindString},
		{New(), KindMap},
		{[]byte("x"), KindOpaque},
		// non-canonical numerics are opaque until widened
		{int32(1), KindOpaque},
		{float32(1), KindOpaque},
	}
	for _, c := range cases {
		if got := KindOf(c.in); got != c.expected {
			t.Errorf("KindOf(%T %v): expected %v, got %v", c.in, c.in, c.expected, got)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindAbsent: "Absent",
		KindBool:   "Bool",
		KindInt:    "Int",
		KindFloat:  "Float",
		KindString: "String",
		KindMap:    "Map",
		KindOpaque: "Opaque",
		Kind(99):   "Unknown",
	}
	for kind, expected := range cases {
		if got := kind.String(); got != expected {
			t.Errorf("Kind(%d).String(): expected %s, got %s", kind, expected, got)
		}
	}
}

func TestHashKey(t *testing.T) {
	// canonical widening keeps keys hash-compatible
	if hashKey(Canonical(int32(7))) != hashKey(int64(7)) {
		t.Errorf("Expected widened int32 to hash like int64")
	}
	if hashKey("abc") != hashString("abc") {
		t.Errorf("Expected string keys to use the string hash")
	}
	if hashKey("abc") == hashKey("abd") {
		t.Errorf("Expected different strings to hash differently")
	}
	if hashKey(true) == hashKey(false) {
		t.Errorf("Expected the two bools to hash differently")
	}

	// uncommon key types hash deterministically by formatted value
	type pair struct{ a, b int }
	if hashKey(pair{1, 2}) != hashKey(pair{1, 2}) {
		t.Errorf("Expected equal struct keys to hash equally")
	}
	if hashKey(pair{1, 2}) == hashKey(pair{2, 1}) {
		t.Errorf("Expected different struct keys to hash differently")
	}
}

func TestValueEqual(t *testing.T) {
	if !valueEqual(nil, nil) {
		t.Errorf("Expected nil to equal nil")
	}
	if valueEqual(nil, int64(1)) || valueEqual(int64(1), nil) {
		t.Errorf("Expected nil to differ from a value")
	}
	if !valueEqual(int64(1), int64(1)) || valueEqual(int64(1), int64(2)) {
		t.Errorf("Unexpected comparable equality result")
	}
	// int64 and float64 are distinct categories even for equal magnitudes
	if valueEqual(int64(1), float64(1)) {
		t.Errorf("Expected int64 and float64 to be unequal")
	}

	// non-comparable values fall back to deep equality
	if !valueEqual([]byte("ab"), []byte("ab")) || valueEqual([]byte("ab"), []byte("ac")) {
		t.Errorf("Unexpected deep equality result for byte slices")
	}

	// nested maps compare structurally
	a, _ := Of("k", int64(1))
	b, _ := Of("k", int64(1))
	c, _ := Of("k", int64(2))
	if !valueEqual(a, b) {
		t.Errorf("Expected structurally equal maps to be value-equal")
	}
	if valueEqual(a, c) {
		t.Errorf("Expected maps with different values to be unequal")
	}
	if valueEqual(a, "not a map") || valueEqual("not a map", a) {
		t.Errorf("Expected a map to be unequal to a non-map")
	}
}

func TestIdentityBoxer(t *testing.T) {
	b := defaultBoxer
	if b.BoxKey("k") != "k" || b.UnboxKey("k") != "k" {
		t.Errorf("Expected identity key boxing")
	}
	if b.BoxValue(int64(1)) != int64(1) || b.UnboxValue(int64(1)) != int64(1) {
		t.Errorf("Expected identity value boxing")
	}
}

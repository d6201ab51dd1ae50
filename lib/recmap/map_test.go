package recmap_test

import (
	"testing"

	"github.com/recbase/recmap/lib/recmap"
)

func TestAliasReadOnly(t *testing.T) {
	m := recmap.New()
	if _, err := m.Put("a", int64(1)); err != nil {
		t.Fatalf("Unexpected error from Put: %v", err)
	}

	view := recmap.New().AliasReadOnly(m)
	if !view.IsReadOnly() {
		t.Errorf("Expected the aliasing view to be read-only")
	}
	if _, err := view.Put("b", int64(2)); !recmap.IsReadOnly(err) {
		t.Errorf("Expected ReadOnly from the view, got %v", err)
	}

	// the store is not sealed, the original view keeps writing
	if m.IsReadOnly() {
		t.Errorf("Expected the original view to stay writable")
	}
	if _, err := m.Put("b", int64(2)); err != nil {
		t.Fatalf("Unexpected error from Put through original view: %v", err)
	}
	if view.GetInt("b") != 2 {
		t.Errorf("Expected the read-only view to observe the shared mutation")
	}
}

func TestAliasCarriesReadOnlyFlag(t *testing.T) {
	m := recmap.New().SetReadOnly()
	view := recmap.New().Alias(m)
	if !view.IsReadOnly() {
		t.Errorf("Expected Alias to carry over the read-only flag")
	}

	// aliasing nil detaches
	view.Alias(nil)
	if view.IsReadOnly() || view.Size() != 0 {
		t.Errorf("Expected a detached, writable view after Alias(nil)")
	}
	if _, err := view.Put("a", int64(1)); err != nil {
		t.Fatalf("Unexpected error from Put after detach: %v", err)
	}
}

func TestCopyOfSealedMapIsWritable(t *testing.T) {
	m := recmap.New()
	if _, err := m.Put("a", int64(1)); err != nil {
		t.Fatalf("Unexpected error from Put: %v", err)
	}
	m.Seal()

	c := recmap.New().Copy(m)
	if c.IsReadOnly() {
		t.Errorf("Expected a copy of a sealed map to be writable")
	}
	if _, err := c.Put("b", int64(2)); err != nil {
		t.Fatalf("Unexpected error from Put into copy: %v", err)
	}
	if m.Size() != 1 {
		t.Errorf("Expected the sealed original to be untouched")
	}

	// copying an empty map yields an unbacked view
	e := recmap.New().Copy(recmap.New())
	if e.Size() != 0 || !e.IsEmpty() {
		t.Errorf("Expected an empty copy")
	}
}

func TestPutOrDelete(t *testing.T) {
	m := recmap.New()
	if _, err := m.PutOrDelete("a", int64(1)); err != nil {
		t.Fatalf("Unexpected error from PutOrDelete: %v", err)
	}
	if m.GetInt("a") != 1 {
		t.Errorf("Expected PutOrDelete to insert a non-nil value")
	}

	old, err := m.PutOrDelete("a", nil)
	if err != nil {
		t.Fatalf("Unexpected error from PutOrDelete: %v", err)
	}
	if old != int64(1) {
		t.Errorf("Expected previous value 1, got %v", old)
	}
	if m.ContainsKey("a") || m.Size() != 0 {
		t.Errorf("Expected a nil value to delete the pair")
	}
}

func TestNestedMapValues(t *testing.T) {
	inner, err := recmap.Of("x", int64(1))
	if err != nil {
		t.Fatalf("Unexpected error from Of: %v", err)
	}
	outer, err := recmap.Of("inner", inner)
	if err != nil {
		t.Fatalf("Unexpected error from Of: %v", err)
	}

	got := outer.GetMap("inner")
	if got != inner {
		t.Errorf("Expected the nested map to be stored by reference")
	}

	// nested maps participate in value lookups structurally
	probe, err := recmap.Of("x", int64(1))
	if err != nil {
		t.Fatalf("Unexpected error from Of: %v", err)
	}
	if !outer.ContainsValue(probe) {
		t.Errorf("Expected ContainsValue to compare nested maps structurally")
	}
}

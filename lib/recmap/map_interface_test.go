package recmap_test

import (
	"testing"

	"github.com/recbase/recmap/lib/recmap"
	maptesting "github.com/recbase/recmap/lib/recmap/testing"
)

// wrapped is a storage envelope used by wrapBoxer.
type wrapped struct {
	v any
}

// wrapBoxer stores every key and value inside a wrapped envelope and peels
// it off on the way out. It exists to prove the storage engine never
// inspects stored representations directly.
type wrapBoxer struct{}

func (wrapBoxer) BoxKey(key any) any { return wrapped{v: key} }

func (wrapBoxer) UnboxKey(key any) any { return key.(wrapped).v }

func (wrapBoxer) BoxValue(value any) any {
	if value == nil {
		return nil
	}
	return wrapped{v: value}
}

func (wrapBoxer) UnboxValue(value any) any {
	if value == nil {
		return nil
	}
	return value.(wrapped).v
}

func TestMapImplementation(t *testing.T) {
	maptesting.RunMapTests(t, "identity", recmap.New)
}

func TestMapImplementationWithBoxer(t *testing.T) {
	maptesting.RunMapTests(t, "wrapping-boxer", func() *recmap.Map {
		return recmap.New().SetBoxer(wrapBoxer{})
	})
}

func BenchmarkMapImplementation(b *testing.B) {
	maptesting.RunMapBenchmarks(b, "identity", recmap.New)
}

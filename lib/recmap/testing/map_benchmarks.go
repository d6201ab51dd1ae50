package testing

import (
	"fmt"
	"testing"

	"github.com/recbase/recmap/lib/recmap"
)

// RunMapBenchmarks runs a benchmark suite against a map implementation.
func RunMapBenchmarks(b *testing.B, name string, factory MapFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Put", func(b *testing.B) {
			benchmarkPut(b, factory())
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, factory())
		})

		b.Run("Overwrite", func(b *testing.B) {
			benchmarkOverwrite(b, factory())
		})

		b.Run("Delete", func(b *testing.B) {
			benchmarkDelete(b, factory())
		})

		b.Run("ForEach", func(b *testing.B) {
			benchmarkForEach(b, factory())
		})

		b.Run("IterateKeys", func(b *testing.B) {
			benchmarkIterateKeys(b, factory())
		})
	})
}

func benchmarkPut(b *testing.B, m *recmap.Map) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}
}

func benchmarkGet(b *testing.B, m *recmap.Map) {
	const numKeys = 1 << 12
	for i := 0; i < numKeys; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Get(fmt.Sprintf("bench-key-%d", i%numKeys))
	}
}

func benchmarkOverwrite(b *testing.B, m *recmap.Map) {
	const numKeys = 1 << 10
	for i := 0; i < numKeys; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i%numKeys), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}
}

func benchmarkDelete(b *testing.B, m *recmap.Map) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("bench-key-%d", i)
		b.StopTimer()
		if _, err := m.Put(key, int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
		b.StartTimer()
		if _, err := m.Delete(key); err != nil {
			b.Fatalf("Unexpected error from Delete: %v", err)
		}
	}
}

func benchmarkForEach(b *testing.B, m *recmap.Map) {
	const numKeys = 1 << 10
	for i := 0; i < numKeys; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.ForEach(int64(0), func(_ *recmap.Map, _, value, result any, _ bool) (recmap.Command, error) {
			return recmap.Continue(result.(int64) + value.(int64)), nil
		}); err != nil {
			b.Fatalf("Unexpected error from ForEach: %v", err)
		}
	}
}

func benchmarkIterateKeys(b *testing.B, m *recmap.Map) {
	const numKeys = 1 << 10
	for i := 0; i < numKeys; i++ {
		if _, err := m.Put(fmt.Sprintf("bench-key-%d", i), int64(i)); err != nil {
			b.Fatalf("Unexpected error from Put: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := m.IterateKeys()
		for it.HasNext() {
			if _, err := it.Next(); err != nil {
				b.Fatalf("Unexpected error from Next: %v", err)
			}
		}
	}
}

package alloc

import (
	"math/rand"
	"testing"

	"github.com/joshuapare/segalloc/provider"
)

func newBenchAllocator(b *testing.B, cfg Config) *Allocator {
	b.Helper()
	a, err := New(provider.NewHeap(), &cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = a.Close() })
	return a
}

// Benchmark_AllocFree_Small benchmarks an alloc/free pair of a small chunk.
func Benchmark_AllocFree_Small(b *testing.B) {
	a := newBenchAllocator(b, ConfigDefault)
	// Keep one block alive so the pair does not create and destroy it.
	if _, _, err := a.Alloc(16); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for _i := 0; _i < b.N; _i++ {
		ref, _, err := a.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark_RandomWorkload benchmarks a mixed workload with a bounded live set.
func Benchmark_RandomWorkload(b *testing.B) {
	a := newBenchAllocator(b, ConfigDefault)
	rng := rand.New(rand.NewSource(1))
	live := make([]Ref, 0, 1024)

	b.ResetTimer()
	b.ReportAllocs()

	for _i := 0; _i < b.N; _i++ {
		if len(live) == cap(live) || (len(live) > 0 && rng.Intn(2) == 0) {
			j := rng.Intn(len(live))
			if err := a.Free(live[j]); err != nil {
				b.Fatal(err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		ref, _, err := a.Alloc(1 + rng.Intn(1024))
		if err != nil {
			b.Fatal(err)
		}
		live = append(live, ref)
	}
}

// Benchmark_Direct benchmarks the direct path.
func Benchmark_Direct(b *testing.B) {
	a := newBenchAllocator(b, ConfigSmall)

	b.ResetTimer()
	b.ReportAllocs()

	for _i := 0; _i < b.N; _i++ {
		ref, _, err := a.Alloc(64 << 10)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

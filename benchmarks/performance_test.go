// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for fastqueue components.

package benchmarks

import (
	"testing"

	"github.com/momentics/fastqueue/facade"
	"github.com/momentics/fastqueue/pool"
)

// BenchmarkHistoryRingAppend measures steady-state append with eviction.
func BenchmarkHistoryRingAppend(b *testing.B) {
	hr, err := pool.NewHistoryRing[int](1024)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 1024; i++ {
		hr.Append(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hr.Append(i)
	}
}

// BenchmarkHistoryRingItem measures indexed reads across the wrap point.
func BenchmarkHistoryRingItem(b *testing.B) {
	hr, err := pool.NewHistoryRing[int](1000)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 1500; i++ {
		hr.Append(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hr.Item(i % 1000); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRegistryAppendParallel measures the facade under contention.
func BenchmarkRegistryAppendParallel(b *testing.B) {
	cfg := facade.DefaultConfig()
	cfg.EnableMetrics = false
	reg := facade.New(cfg)
	defer reg.Close()

	h, err := reg.Create(256)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if err := reg.Append(h, i); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}

package metrics

import "runtime"

// MemorySnapshot is a subset of runtime.MemStats taken around a benchmark.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc" yaml:"heap_alloc"`
	TotalAlloc   uint64 `json:"total_alloc" yaml:"total_alloc"`
	Mallocs      uint64 `json:"mallocs" yaml:"mallocs"`
	Sys          uint64 `json:"sys" yaml:"sys"`
	NumGC        uint32 `json:"num_gc" yaml:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns" yaml:"pause_total_ns"`
}

// ReadMemory returns the current memory statistics.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// MemoryDelta is the allocation activity between two snapshots.
type MemoryDelta struct {
	Allocated uint64 `json:"allocated_bytes" yaml:"allocated_bytes"`
	Mallocs   uint64 `json:"mallocs" yaml:"mallocs"`
	GCCycles  uint32 `json:"gc_cycles" yaml:"gc_cycles"`
	PauseNs   uint64 `json:"gc_pause_ns" yaml:"gc_pause_ns"`
}

// Since returns the activity from before to s. The cumulative counters
// never decrease, so the differences are always non-negative.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		Mallocs:   s.Mallocs - before.Mallocs,
		GCCycles:  s.NumGC - before.NumGC,
		PauseNs:   s.PauseTotalNs - before.PauseTotalNs,
	}
}

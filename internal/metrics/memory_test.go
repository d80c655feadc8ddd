package metrics

import "testing"

var sink []byte

func TestReadMemory(t *testing.T) {
	t.Parallel()

	snap := ReadMemory()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	before := ReadMemory()
	sink = make([]byte, 1<<20)
	after := ReadMemory()

	d := after.Since(before)
	if d.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want at least 1 MiB", d.Allocated)
	}
	if d.Mallocs == 0 {
		t.Error("Mallocs should count the allocation")
	}
}

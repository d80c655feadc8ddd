package orchestration

import (
	"sort"
	"time"
)

// RunSummary describes the spread of run durations.
type RunSummary struct {
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	Median time.Duration
}

// Summary computes the duration spread of r.Runs. It returns the zero
// value when there are no runs.
func (r BenchmarkResult) Summary() RunSummary {
	n := len(r.Runs)
	if n == 0 {
		return RunSummary{}
	}
	ds := make([]time.Duration, n)
	var total time.Duration
	for i, s := range r.Runs {
		ds[i] = s.Duration
		total += s.Duration
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })

	median := ds[n/2]
	if n%2 == 0 {
		median = (ds[n/2-1] + ds[n/2]) / 2
	}
	return RunSummary{
		Min:    ds[0],
		Max:    ds[n-1],
		Mean:   total / time.Duration(n),
		Median: median,
	}
}

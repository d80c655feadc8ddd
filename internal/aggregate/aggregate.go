// Package aggregate implements the per-partition reduction and the shared
// accumulator that partial results are merged into.
//
// The reduction keeps three running sums over a slice of float64 values:
// the sum of ln|v| over non-zero values, the plain sum, and the sum of
// v - i where i is the element index. A zero value anywhere in the input
// sets HasZero, which forces the product-style Sum metric to 0.
package aggregate

import (
	"math"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/agbru/aggbench/internal/partition"
)

// Accumulator holds the partial state of one aggregation task.
type Accumulator struct {
	LogSum  float64 `json:"log_sum" yaml:"log_sum"`
	Sum     float64 `json:"sum" yaml:"sum"`
	DiffSum float64 `json:"diff_sum" yaml:"diff_sum"`
	HasZero bool    `json:"has_zero" yaml:"has_zero"`
	Count   int     `json:"count" yaml:"count"`
}

// Add folds other into a.
func (a *Accumulator) Add(other Accumulator) {
	a.LogSum += other.LogSum
	a.Sum += other.Sum
	a.DiffSum += other.DiffSum
	a.HasZero = a.HasZero || other.HasZero
	a.Count += other.Count
}

// Compute reduces data over the index range r.
func Compute(data []float64, r partition.Range) Accumulator {
	var acc Accumulator
	for i := r.Start; i < r.End; i++ {
		v := data[i]
		if v == 0 {
			acc.HasZero = true
		} else {
			acc.LogSum += math.Log(math.Abs(v))
		}
		acc.Sum += v
		acc.DiffSum += v - float64(i)
		acc.Count++
	}
	return acc
}

// Shared is the global accumulator. Tasks merge into it exactly once each.
// The zero value is ready to use.
type Shared struct {
	_   cpu.CacheLinePad
	mu  sync.Mutex
	acc Accumulator
	_   cpu.CacheLinePad
}

// Merge adds a task's partial result under the lock.
func (s *Shared) Merge(local Accumulator) {
	s.mu.Lock()
	s.acc.Add(local)
	s.mu.Unlock()
}

// Totals returns a copy of the merged state. Callers read it only after
// every task has been joined.
func (s *Shared) Totals() Accumulator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc
}

// Metrics are the three reported figures of a run.
type Metrics struct {
	Mode   float64 `json:"mode" yaml:"mode"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Sum    float64 `json:"sum" yaml:"sum"`
}

// Finalize derives the reported metrics from the merged totals.
func Finalize(t Accumulator) Metrics {
	var m Metrics
	if t.Count > 0 {
		m.Mode = t.DiffSum / float64(t.Count)
	}
	m.StdDev = t.Sum / 2
	if !t.HasZero {
		m.Sum = math.Exp(t.LogSum)
	}
	return m
}

// Equal reports whether m and o agree within a relative tolerance.
func (m Metrics) Equal(o Metrics, tol float64) bool {
	return closeTo(m.Mode, o.Mode, tol) &&
		closeTo(m.StdDev, o.StdDev, tol) &&
		closeTo(m.Sum, o.Sum, tol)
}

func closeTo(a, b, tol float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*scale
}

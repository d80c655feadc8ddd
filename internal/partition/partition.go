// Package partition splits an index space into contiguous half-open ranges
// that are handed out to concurrent aggregation tasks.
package partition

import "fmt"

// MaxSplitDepth is the largest split depth accepted by DivideConquerParts.
const MaxSplitDepth = 5

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by r.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Policy controls how the requested partition count is clamped.
type Policy struct {
	// Ceiling caps the number of partitions. Zero or negative means no cap.
	Ceiling int
}

// Effective returns the number of partitions Plan produces for n items.
func (p Policy) Effective(n, requested int) int {
	if n <= 0 {
		return 0
	}
	parts := requested
	if parts < 1 {
		parts = 1
	}
	if p.Ceiling > 0 && parts > p.Ceiling {
		parts = p.Ceiling
	}
	if n/parts == 0 {
		parts = n
	}
	return parts
}

// Plan divides [0, n) into Effective(n, requested) contiguous ranges of
// n/parts items each. The last range absorbs the remainder. Plan returns
// nil when n is zero.
func Plan(n, requested int, policy Policy) []Range {
	parts := policy.Effective(n, requested)
	if parts == 0 {
		return nil
	}
	chunk := n / parts
	ranges := make([]Range, parts)
	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[parts-1].End = n
	return ranges
}

// DivideConquerParts returns the partition count 2^depth requested by a
// split depth. Depth 0 yields a single partition.
func DivideConquerParts(depth int) int {
	if depth <= 0 {
		return 1
	}
	return 1 << depth
}

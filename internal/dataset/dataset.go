// Package dataset builds the fixed benchmark input. Values are drawn from a
// generator that reproduces the GNU C library srand/rand sequence, so a
// given seed yields the same dataset as the C implementation it is compared
// against.
package dataset

import "math"

const (
	// RandMax is the largest value returned by Source.Next.
	RandMax = 1<<31 - 1

	// DefaultSeed and DefaultSize describe the standard benchmark input.
	DefaultSeed = 42
	DefaultSize = 100

	stateDegree = 31
	stateSep    = 3
	discard     = 310
)

// Source is the additive feedback generator used by glibc's rand with the
// default 128-byte state (TYPE_3: x[i] = x[i-3] + x[i-31]).
type Source struct {
	state [stateDegree]int32
	front int
	rear  int
}

// NewSource returns a Source seeded like srand(seed). Seed 0 is treated as 1.
func NewSource(seed uint32) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state.
func (s *Source) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	word := int64(int32(seed))
	s.state[0] = int32(word)
	for i := 1; i < stateDegree; i++ {
		// Schrage's method for 16807 * word mod (2^31 - 1).
		hi := word / 127773
		lo := word % 127773
		word = 16807*lo - 2836*hi
		if word < 0 {
			word += RandMax
		}
		s.state[i] = int32(word)
	}
	s.front = stateSep
	s.rear = 0
	for i := 0; i < discard; i++ {
		s.Next()
	}
}

// Next returns the next value in [0, RandMax].
func (s *Source) Next() int32 {
	v := uint32(s.state[s.front]) + uint32(s.state[s.rear])
	s.state[s.front] = int32(v)
	s.front = (s.front + 1) % stateDegree
	s.rear = (s.rear + 1) % stateDegree
	return int32(v >> 1)
}

// Generate returns n values in [0, 100], each round(Next()/RandMax*100).
func Generate(seed uint32, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	src := NewSource(seed)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Round(float64(src.Next()) / RandMax * 100)
	}
	return data
}

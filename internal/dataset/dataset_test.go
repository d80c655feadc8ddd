package dataset

import (
	"reflect"
	"testing"
)

func TestSourceMatchesCLibrary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		seed uint32
		want []int32
	}{
		{1, []int32{1804289383, 846930886, 1681692777}},
		{42, []int32{71876166, 708592740, 1483128881, 907283241, 442951012}},
	}
	for _, tt := range tests {
		src := NewSource(tt.seed)
		for i, want := range tt.want {
			if got := src.Next(); got != want {
				t.Errorf("seed %d: value %d = %d, want %d", tt.seed, i, got, want)
			}
		}
	}
}

func TestSeedZeroIsOne(t *testing.T) {
	t.Parallel()
	a, b := NewSource(0), NewSource(1)
	for i := 0; i < 10; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("value %d: seed 0 gave %d, seed 1 gave %d", i, x, y)
		}
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	data := Generate(DefaultSeed, DefaultSize)
	if len(data) != DefaultSize {
		t.Fatalf("len = %d, want %d", len(data), DefaultSize)
	}
	wantPrefix := []float64{3, 33, 69, 42, 21, 25, 64, 86, 30, 2}
	if !reflect.DeepEqual(data[:len(wantPrefix)], wantPrefix) {
		t.Errorf("prefix = %v, want %v", data[:len(wantPrefix)], wantPrefix)
	}

	sum := 0.0
	for _, v := range data {
		if v < 0 || v > 100 || v != float64(int(v)) {
			t.Fatalf("value %v outside the integer range [0, 100]", v)
		}
		sum += v
	}
	if sum != 5266 {
		t.Errorf("sum = %v, want 5266", sum)
	}

	if !reflect.DeepEqual(data, Generate(DefaultSeed, DefaultSize)) {
		t.Error("Generate is not deterministic")
	}
}

func TestGenerateEmpty(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -1} {
		if got := Generate(DefaultSeed, n); len(got) != 0 {
			t.Errorf("Generate(n=%d) = %v, want empty", n, got)
		}
	}
}

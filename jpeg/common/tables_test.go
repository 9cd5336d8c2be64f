package common

import "testing"

func TestZigZagRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for k, natural := range ZigZag {
		if natural < 0 || natural >= BlockSize {
			t.Fatalf("ZigZag[%d] = %d out of range", k, natural)
		}
		if seen[natural] {
			t.Fatalf("ZigZag maps twice to %d", natural)
		}
		seen[natural] = true

		if NaturalToZigZag[natural] != k {
			t.Errorf("NaturalToZigZag[ZigZag[%d]] = %d", k, NaturalToZigZag[natural])
		}
	}

	for i := 0; i < BlockSize; i++ {
		if ZigZag[NaturalToZigZag[i]] != i {
			t.Errorf("ZigZag[NaturalToZigZag[%d]] = %d", i, ZigZag[NaturalToZigZag[i]])
		}
	}
}

func TestZigZagWalk(t *testing.T) {
	// Consecutive serialized positions are neighbours in the 8x8 grid, either
	// along a diagonal or one step along an edge.
	for k := 1; k < BlockSize; k++ {
		r0, c0 := ZigZag[k-1]/8, ZigZag[k-1]%8
		r1, c1 := ZigZag[k]/8, ZigZag[k]%8
		dr, dc := r1-r0, c1-c0

		diagonal := (dr == 1 && dc == -1) || (dr == -1 && dc == 1)
		edge := (dr == 0 && dc == 1) || (dr == 1 && dc == 0)
		if !diagonal && !edge {
			t.Errorf("step %d: (%d,%d) -> (%d,%d)", k, r0, c0, r1, c1)
		}
	}
}

func TestDivCeil(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{17, 16, 2},
	}
	for _, tt := range tests {
		if got := DivCeil(tt.a, tt.b); got != tt.want {
			t.Errorf("DivCeil(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

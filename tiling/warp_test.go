package tiling

import (
	"math"
	"testing"
)

func TestWarpTable(t *testing.T) {
	table := warpTable(5, 5)
	want := []float64{2, 0, 2, 4, 2}
	for i := range want {
		if math.Abs(table[i]-want[i]) > 1e-9 {
			t.Errorf("warpTable(5, 5)[%d] = %v, want = %v", i, table[i], want[i])
		}
	}

	if got := warpTable(1, 1); len(got) != 1 || got[0] != 0 {
		t.Errorf("warpTable(1, 1) = %v, want = [0]", got)
	}
}

func TestNeighborsInBounds(t *testing.T) {
	for w := 1; w <= 9; w++ {
		for h := 1; h <= 9; h++ {
			warpX, warpY := warpTable(w, w), warpTable(h, h)
			for _, x := range warpX {
				for _, y := range warpY {
					x0, y0, x1, y1, fx, fy := neighbors(x, y, w, h)
					for _, c := range []int{x0, x1} {
						if c < 0 || c >= w {
							t.Fatalf("w=%d h=%d: x neighbor %d out of range for %v", w, h, c, x)
						}
					}
					for _, c := range []int{y0, y1} {
						if c < 0 || c >= h {
							t.Fatalf("w=%d h=%d: y neighbor %d out of range for %v", w, h, c, y)
						}
					}
					if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
						t.Fatalf("fractions out of range: %v %v", fx, fy)
					}
				}
			}
		}
	}
}

func TestWrap(t *testing.T) {
	for _, tc := range []struct{ i, n, want int }{
		{0, 1, 0},
		{0, 3, 1},
		{2, 3, 0},
		{4, 5, 0},
	} {
		if got := wrap(tc.i, tc.n); got != tc.want {
			t.Errorf("wrap(%d, %d) = %d, want = %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestBlendTruncates(t *testing.T) {
	if got := blend(0, 1, 0, 1, 0.99, 0); got != 0 {
		t.Errorf("blend truncation = %d, want = 0", got)
	}
	if got := blend(10, 20, 30, 40, 0.5, 0.5); got != 25 {
		t.Errorf("blend center = %d, want = 25", got)
	}
}

package geom

import (
	"math"
	"testing"
)

func TestCell(t *testing.T) {
	tests := []struct {
		v      Vec
		cx, cy int
	}{
		{V(0.5, 0.5), 0, 0},
		{V(3.99, 2.01), 3, 2},
		{V(-0.2, 1), -1, 1},
		{CellCenter(7, 4), 7, 4},
	}
	for _, tt := range tests {
		if x, y := tt.v.Cell(); x != tt.cx || y != tt.cy {
			t.Errorf("%v.Cell() = (%d,%d), want (%d,%d)", tt.v, x, y, tt.cx, tt.cy)
		}
	}
}

func TestDist(t *testing.T) {
	if got := Dist(V(0, 0), V(3, 4)); got != 5 {
		t.Errorf("Dist() = %v, want 5", got)
	}
	if got := V(1, 2).Add(V(2, 3)).Sub(V(1, 1)).Scale(2); got != V(4, 8) {
		t.Errorf("arithmetic = %v, want (4,8)", got)
	}
}

func TestMoveTowards(t *testing.T) {
	from, to := V(0, 0), V(10, 0)

	if got := MoveTowards(from, to, 3); math.Abs(got.X-3) > 1e-9 || got.Y != 0 {
		t.Errorf("MoveTowards() = %v, want (3,0)", got)
	}
	if got := MoveTowards(from, to, 50); got != to {
		t.Errorf("MoveTowards() overshot: %v", got)
	}
	if got := MoveTowards(to, to, 1); got != to {
		t.Errorf("MoveTowards() at target = %v", got)
	}
}

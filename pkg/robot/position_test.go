package robot

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestStill(t *testing.T) {
	prev := r3.Vec{X: 1, Y: 0, Z: 2}

	tests := []struct {
		name string
		cur  r3.Vec
		want bool
	}{
		{"same position", prev, true},
		{"tiny x drift", r3.Vec{X: 1.0009, Y: 0, Z: 2}, true},
		{"x moved", r3.Vec{X: 1.002, Y: 0, Z: 2}, false},
		{"z moved", r3.Vec{X: 1, Y: 0, Z: 1.99}, false},
		{"height ignored", r3.Vec{X: 1, Y: 0.5, Z: 2}, true},
	}

	for _, tt := range tests {
		if got := Still(tt.cur, prev); got != tt.want {
			t.Errorf("%s: Still(%v, %v) = %v, want %v", tt.name, tt.cur, prev, got, tt.want)
		}
	}
}

func TestDisplaced(t *testing.T) {
	before := r3.Vec{X: 1.0, Y: 0.2, Z: 3.0}

	tests := []struct {
		name  string
		after r3.Vec
		want  bool
	}{
		{"unchanged", before, false},
		{"below epsilon", r3.Vec{X: 1.0005, Y: 0.2, Z: 3.0}, false},
		{"pushed along z", r3.Vec{X: 1.0, Y: 0.2, Z: 3.05}, true},
		{"lifted", r3.Vec{X: 1.0, Y: 0.25, Z: 3.0}, true},
		{"pushed back along x", r3.Vec{X: 0.99, Y: 0.2, Z: 3.0}, true},
	}

	for _, tt := range tests {
		if got := Displaced(before, tt.after); got != tt.want {
			t.Errorf("%s: Displaced(%v, %v) = %v, want %v", tt.name, before, tt.after, got, tt.want)
		}
	}
}

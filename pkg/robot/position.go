package robot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// StillEpsilon is the per-axis ground-plane motion below which the robot is still.
	StillEpsilon = 0.001
	// DisplacementEpsilon is the per-axis motion above which a box has been moved.
	DisplacementEpsilon = 0.001
)

// Still reports whether the robot has not moved on the ground plane between
// two position samples. Height (Y) is ignored.
func Still(cur, prev r3.Vec) bool {
	return math.Abs(cur.X-prev.X) < StillEpsilon && math.Abs(cur.Z-prev.Z) < StillEpsilon
}

// Displaced reports whether any axis moved by more than DisplacementEpsilon.
func Displaced(before, after r3.Vec) bool {
	d := r3.Sub(after, before)
	return math.Abs(d.X) > DisplacementEpsilon ||
		math.Abs(d.Y) > DisplacementEpsilon ||
		math.Abs(d.Z) > DisplacementEpsilon
}

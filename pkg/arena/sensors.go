package arena

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// sensorAngles are the mounting angles of ps0..ps7 relative to the heading,
// in degrees, positive to the left.
var sensorAngles = [8]float64{-17, -49, -90, -150, 150, 90, 49, 17}

// lookupEntry maps an obstacle distance to a raw sensor value.
type lookupEntry struct {
	distance float64 // meters
	value    float64
}

// proximityTable is the e-puck infrared response curve.
var proximityTable = []lookupEntry{
	{0, 4095},
	{0.005, 2133.33},
	{0.01, 1465.73},
	{0.015, 601.46},
	{0.02, 383.84},
	{0.03, 234.93},
	{0.04, 158.03},
	{0.05, 120},
	{0.06, 104.09},
	{0.07, 67.19},
}

// rawProximity converts an obstacle distance into a raw reading by linear
// interpolation over proximityTable. Beyond range the last value holds.
func rawProximity(d float64) float64 {
	if d <= 0 {
		return proximityTable[0].value
	}
	for i := 1; i < len(proximityTable); i++ {
		lo, hi := proximityTable[i-1], proximityTable[i]
		if d <= hi.distance {
			f := (d - lo.distance) / (hi.distance - lo.distance)
			return lo.value + f*(hi.value-lo.value)
		}
	}
	return proximityTable[len(proximityTable)-1].value
}

// heading returns the unit ground-plane direction for an angle in radians.
func heading(rad float64) r3.Vec {
	return r3.Vec{X: math.Cos(rad), Z: math.Sin(rad)}
}

// rayBox returns the distance along a ray to an axis-aligned square on the
// ground plane, or +Inf when it misses. An origin inside the square hits at 0.
func rayBox(o, dir r3.Vec, b *box) float64 {
	tmin, tmax := math.Inf(-1), math.Inf(1)

	slab := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		return true
	}

	if !slab(o.X, dir.X, b.pos.X-b.half, b.pos.X+b.half) ||
		!slab(o.Z, dir.Z, b.pos.Z-b.half, b.pos.Z+b.half) {
		return math.Inf(1)
	}
	if tmax < 0 || tmin > tmax {
		return math.Inf(1)
	}
	if tmin < 0 {
		return 0
	}
	return tmin
}

// rayWalls returns the distance along a ray from inside the arena to its walls.
func (a *Arena) rayWalls(o, dir r3.Vec) float64 {
	hw, hd := a.layout.Width/2, a.layout.Depth/2
	t := math.Inf(1)
	switch {
	case dir.X > 0:
		t = math.Min(t, (hw-o.X)/dir.X)
	case dir.X < 0:
		t = math.Min(t, (-hw-o.X)/dir.X)
	}
	switch {
	case dir.Z > 0:
		t = math.Min(t, (hd-o.Z)/dir.Z)
	case dir.Z < 0:
		t = math.Min(t, (-hd-o.Z)/dir.Z)
	}
	return math.Max(t, 0)
}

// sense updates every enabled sensor from the current world.
func (a *Arena) sense() {
	for i := range a.sensors {
		if !a.sensors[i].enabled {
			continue
		}
		dir := heading(a.body.heading + sensorAngles[i]*math.Pi/180)
		origin := r3.Add(a.body.pos, r3.Scale(RobotRadius, dir))

		d := a.rayWalls(origin, dir)
		for _, b := range a.boxes {
			d = math.Min(d, rayBox(origin, dir, b))
		}
		a.sensors[i].value = rawProximity(d)
	}
}

// Package arena is a small kinematic simulator of a differential-drive
// robot in a walled pen of boxes. It implements host.Host so the controller
// can run without an external simulator.
//
// The model is simple: the robot is a disc, boxes are axis-aligned squares.
// Walls and heavy boxes stop motion into them but let the robot slide along
// them, and the one light box is shoved along by whatever pushes it.
package arena

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/boxbot/pkg/host"
	"github.com/gwillem/boxbot/pkg/robot"
)

// e-puck geometry.
const (
	RobotRadius = 0.037
	WheelRadius = 0.0205
	AxleLength  = 0.052
)

// substepMs bounds the integration step so fast wheels cannot tunnel through boxes.
const substepMs = 16

const (
	tagLeft  host.DeviceTag = robot.NumSensors
	tagRight host.DeviceTag = robot.NumSensors + 1
	selfRef  host.NodeRef   = 0
)

// Options tune how the arena runs.
type Options struct {
	Realtime    bool          // pace Step to the wall clock
	MaxDuration time.Duration // stop after this much simulated time, 0 runs forever
}

type body struct {
	pos     r3.Vec
	heading float64 // radians
	left    float64 // wheel angular velocity, rad/s
	right   float64
}

type box struct {
	name  string
	pos   r3.Vec
	half  float64
	light bool
}

type sensor struct {
	enabled bool
	value   float64
}

// Arena is a simulated world implementing host.Host.
type Arena struct {
	layout  Layout
	opts    Options
	devices map[string]host.DeviceTag

	mu      sync.Mutex
	body    body
	boxes   []*box
	sensors [robot.NumSensors]sensor
	nowMs   int64
	next    time.Time

	stopped atomic.Bool
}

var _ host.Host = (*Arena)(nil)

// New builds an arena from a validated layout.
func New(l *Layout, opts Options) *Arena {
	a := &Arena{
		layout:  *l,
		opts:    opts,
		devices: make(map[string]host.DeviceTag, robot.NumSensors+2),
		body: body{
			pos:     vec(l.Robot.Position),
			heading: l.Robot.Heading * math.Pi / 180,
		},
	}
	for i, name := range robot.AllSensors() {
		a.devices[string(name)] = host.DeviceTag(i)
	}
	a.devices[robot.LeftWheel] = tagLeft
	a.devices[robot.RightWheel] = tagRight

	for _, b := range l.Boxes {
		a.boxes = append(a.boxes, &box{
			name:  b.Name,
			pos:   vec(b.Position),
			half:  b.Size / 2,
			light: b.Light,
		})
	}
	return a
}

// Stop makes the next Step return false. Safe to call from any goroutine.
func (a *Arena) Stop() {
	a.stopped.Store(true)
}

// Elapsed returns the simulated time.
func (a *Arena) Elapsed() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return time.Duration(a.nowMs) * time.Millisecond
}

// World is a copy of the arena state at one instant.
type World struct {
	Elapsed time.Duration
	Robot   r3.Vec
	Heading float64 // degrees
	Boxes   []BoxState
}

// BoxState is one box in a World.
type BoxState struct {
	Name     string
	Position r3.Vec
	Light    bool
}

// Snapshot returns a copy of the current world.
func (a *Arena) Snapshot() World {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := World{
		Elapsed: time.Duration(a.nowMs) * time.Millisecond,
		Robot:   a.body.pos,
		Heading: a.body.heading * 180 / math.Pi,
		Boxes:   make([]BoxState, len(a.boxes)),
	}
	for i, b := range a.boxes {
		w.Boxes[i] = BoxState{Name: b.name, Position: b.pos, Light: b.light}
	}
	return w
}

// Device implements host.Host.
func (a *Arena) Device(name string) (host.DeviceTag, bool) {
	tag, ok := a.devices[name]
	return tag, ok
}

// EnableSensor implements host.Host. Sampling is always once per step.
func (a *Arena) EnableSensor(tag host.DeviceTag, _ int) {
	if tag < 0 || int(tag) >= robot.NumSensors {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sensors[tag].enabled = true
}

// SensorValue implements host.Host. Values refresh after each step.
func (a *Arena) SensorValue(tag host.DeviceTag) float64 {
	if tag < 0 || int(tag) >= robot.NumSensors {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sensors[tag].value
}

// SetVelocity implements host.Host.
func (a *Arena) SetVelocity(tag host.DeviceTag, v float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch tag {
	case tagLeft:
		a.body.left = v
	case tagRight:
		a.body.right = v
	}
}

// NodeByDef implements host.Host.
func (a *Arena) NodeByDef(def string) (host.NodeRef, bool) {
	for i, b := range a.boxes {
		if b.name == def {
			return host.NodeRef(i + 1), true
		}
	}
	return 0, false
}

// Self implements host.Host.
func (a *Arena) Self() host.NodeRef {
	return selfRef
}

// Position implements host.Host. Unknown refs report the origin.
func (a *Arena) Position(ref host.NodeRef) r3.Vec {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ref == selfRef {
		return a.body.pos
	}
	i := int(ref) - 1
	if i < 0 || i >= len(a.boxes) {
		return r3.Vec{}
	}
	return a.boxes[i].pos
}

// Step implements host.Host.
func (a *Arena) Step(durationMs int) bool {
	if a.stopped.Load() {
		return false
	}
	if a.opts.MaxDuration > 0 && a.Elapsed() >= a.opts.MaxDuration {
		return false
	}

	a.mu.Lock()
	for left := durationMs; left > 0; left -= substepMs {
		a.integrate(float64(min(left, substepMs)) / 1000)
	}
	a.sense()
	a.nowMs += int64(durationMs)
	a.mu.Unlock()

	if a.opts.Realtime {
		a.pace(time.Duration(durationMs) * time.Millisecond)
	}
	return !a.stopped.Load()
}

func (a *Arena) pace(d time.Duration) {
	now := time.Now()
	if a.next.IsZero() || a.next.Before(now.Add(-d)) {
		a.next = now
	}
	a.next = a.next.Add(d)
	time.Sleep(time.Until(a.next))
}

// integrate advances the robot by dt seconds and resolves contacts.
func (a *Arena) integrate(dt float64) {
	v := WheelRadius * (a.body.left + a.body.right) / 2
	w := WheelRadius * (a.body.right - a.body.left) / AxleLength

	a.body.heading = math.Mod(a.body.heading+w*dt, 2*math.Pi)
	delta := a.slide(r3.Scale(v*dt, heading(a.body.heading)))
	if delta == (r3.Vec{}) {
		return
	}

	proposed := r3.Add(a.body.pos, delta)
	if !a.layout.inside(proposed, RobotRadius) {
		return
	}

	var pushed []*box
	for _, b := range a.boxes {
		if !discTouches(proposed, RobotRadius, b) {
			continue
		}
		if !b.light || !a.canPush(b, delta) {
			return
		}
		pushed = append(pushed, b)
	}

	a.body.pos = proposed
	for _, b := range pushed {
		b.pos = r3.Add(b.pos, delta)
	}
}

// slide drops the part of delta that would drive the robot into a wall or
// into a box it cannot push, so the robot glides along whatever it touches.
func (a *Arena) slide(delta r3.Vec) r3.Vec {
	hw, hd := a.layout.Width/2, a.layout.Depth/2
	p := r3.Add(a.body.pos, delta)
	if (p.X+RobotRadius > hw && delta.X > 0) || (p.X-RobotRadius < -hw && delta.X < 0) {
		delta.X = 0
	}
	if (p.Z+RobotRadius > hd && delta.Z > 0) || (p.Z-RobotRadius < -hd && delta.Z < 0) {
		delta.Z = 0
	}

	for _, b := range a.boxes {
		if b.light && a.canPush(b, delta) {
			continue
		}
		if !discTouches(r3.Add(a.body.pos, delta), RobotRadius, b) {
			continue
		}
		// contact normal, from the closest point of the box to the robot
		n := r3.Sub(a.body.pos, nearest(b, a.body.pos))
		l := r3.Norm(n)
		if l == 0 {
			continue
		}
		n = r3.Scale(1/l, n)
		if d := r3.Dot(delta, n); d < 0 {
			delta = r3.Sub(delta, r3.Scale(d, n))
		}
	}
	return delta
}

// canPush reports whether b can move by delta without leaving the arena or
// running into another box.
func (a *Arena) canPush(b *box, delta r3.Vec) bool {
	moved := box{pos: r3.Add(b.pos, delta), half: b.half}
	if !a.layout.inside(moved.pos, moved.half) {
		return false
	}
	for _, other := range a.boxes {
		if other != b && boxesOverlap(&moved, other) {
			return false
		}
	}
	return true
}

// nearest returns the point of b's footprint closest to p, at p's height.
func nearest(b *box, p r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Max(b.pos.X-b.half, math.Min(p.X, b.pos.X+b.half)),
		Y: p.Y,
		Z: math.Max(b.pos.Z-b.half, math.Min(p.Z, b.pos.Z+b.half)),
	}
}

// discTouches reports whether a disc on the ground plane overlaps a box.
func discTouches(c r3.Vec, r float64, b *box) bool {
	n := nearest(b, c)
	dx, dz := c.X-n.X, c.Z-n.Z
	return dx*dx+dz*dz < r*r
}

func boxesOverlap(a, b *box) bool {
	return math.Abs(a.pos.X-b.pos.X) < a.half+b.half &&
		math.Abs(a.pos.Z-b.pos.Z) < a.half+b.half
}

package host

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// fakeHost is a scripted host recording every call.
type fakeHost struct {
	devices   map[string]DeviceTag
	nodes     map[string]NodeRef
	positions map[NodeRef]r3.Vec
	values    map[DeviceTag]float64
	enabled   map[DeviceTag]int
	velocity  map[DeviceTag]float64
	self      NodeRef
}

func newFakeHost(boxes ...string) *fakeHost {
	h := &fakeHost{
		devices:   make(map[string]DeviceTag),
		nodes:     make(map[string]NodeRef),
		positions: make(map[NodeRef]r3.Vec),
		values:    make(map[DeviceTag]float64),
		enabled:   make(map[DeviceTag]int),
		velocity:  make(map[DeviceTag]float64),
		self:      1,
	}
	names := []string{"ps0", "ps1", "ps2", "ps3", "ps4", "ps5", "ps6", "ps7", "left wheel motor", "right wheel motor"}
	for i, name := range names {
		h.devices[name] = DeviceTag(i + 1)
	}
	for i, name := range boxes {
		ref := NodeRef(100 + i)
		h.nodes[name] = ref
		h.positions[ref] = r3.Vec{X: float64(i), Y: 0.05, Z: 0}
	}
	return h
}

func (h *fakeHost) Device(name string) (DeviceTag, bool) {
	tag, ok := h.devices[name]
	return tag, ok
}

func (h *fakeHost) EnableSensor(tag DeviceTag, samplingMs int) { h.enabled[tag] = samplingMs }
func (h *fakeHost) SensorValue(tag DeviceTag) float64          { return h.values[tag] }
func (h *fakeHost) SetVelocity(tag DeviceTag, v float64)       { h.velocity[tag] = v }

func (h *fakeHost) NodeByDef(def string) (NodeRef, bool) {
	ref, ok := h.nodes[def]
	return ref, ok
}

func (h *fakeHost) Self() NodeRef               { return h.self }
func (h *fakeHost) Position(ref NodeRef) r3.Vec { return h.positions[ref] }
func (h *fakeHost) Step(int) bool               { return true }

package host

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/boxbot/pkg/robot"
)

// Box is a tracked box and its position at one instant.
type Box struct {
	Name     string
	Ref      NodeRef
	Position r3.Vec
}

// Boxes is an ordered set of tracked boxes.
type Boxes []Box

// Snapshot returns a copy of the set with every position read from h.
func (b Boxes) Snapshot(h Host) Boxes {
	snap := make(Boxes, len(b))
	for i, box := range b {
		box.Position = h.Position(box.Ref)
		snap[i] = box
	}
	return snap
}

// Names returns the box names in order.
func (b Boxes) Names() []string {
	names := make([]string, len(b))
	for i, box := range b {
		names[i] = box.Name
	}
	return names
}

// AnyDisplaced reports whether any box moved between two snapshots of the
// same set. Boxes missing from after are ignored.
func AnyDisplaced(before, after Boxes) bool {
	moved, _ := FirstDisplaced(before, after)
	return moved
}

// FirstDisplaced is AnyDisplaced that also returns the first moved box.
func FirstDisplaced(before, after Boxes) (bool, Box) {
	byName := make(map[string]r3.Vec, len(after))
	for _, box := range after {
		byName[box.Name] = box.Position
	}
	for _, box := range before {
		pos, ok := byName[box.Name]
		if !ok {
			continue
		}
		if robot.Displaced(box.Position, pos) {
			return true, Box{Name: box.Name, Ref: box.Ref, Position: pos}
		}
	}
	return false, Box{}
}

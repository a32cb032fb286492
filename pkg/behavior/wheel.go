// Package behavior decides wheel commands for the box-finding robot.
//
// An Arbiter is fed one set of normalized proximity readings per control
// tick together with whether the robot moved since the previous tick. It
// evaluates a fixed, priority-ordered list of rules and returns the wheel
// command of the first rule that matches:
//
//  1. unstick: the robot has been still for StuckAfterMs and the light box
//     has not been found
//  2. found: the light box has been displaced; spin in place from now on
//  3. pincer right: front and right-side sensors triggered
//  4. pincer left: front and left-side sensors triggered
//  5. front: a front sensor triggered
//  6. cruise: drive straight ahead
//
// A command with both wheels reversing is rewritten into an asymmetric
// forward arc before it is returned.
package behavior

import "fmt"

// WheelCommand is a pair of unscaled wheel speed multipliers in [-1, 1].
type WheelCommand struct {
	Left  float64
	Right float64
}

// Scale returns the command multiplied by k, giving actuator velocities.
func (w WheelCommand) Scale(k float64) WheelCommand {
	return WheelCommand{Left: w.Left * k, Right: w.Right * k}
}

// Reversing reports whether both wheels turn backwards.
func (w WheelCommand) Reversing() bool {
	return w.Left < 0 && w.Right < 0
}

func (w WheelCommand) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", w.Left, w.Right)
}

var (
	cruise   = WheelCommand{Left: 1, Right: 1}
	spinCCW  = WheelCommand{Left: -1, Right: 1}
	spinCW   = WheelCommand{Left: 1, Right: -1}
	arcRight = WheelCommand{Left: 1, Right: 0.15}
	arcLeft  = WheelCommand{Left: 0.15, Right: 1}
)

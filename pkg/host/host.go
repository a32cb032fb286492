// Package host defines the contract between the controller and the
// simulation (or robot) it runs against, and binds the named devices and
// scene nodes the controller needs.
package host

import "gonum.org/v1/gonum/spatial/r3"

// DeviceTag identifies a sensor or motor on the robot.
type DeviceTag int

// NodeRef identifies a scene entity whose position can be read.
type NodeRef int

// Host is the simulation the control loop runs against. All reads between
// two calls to Step observe the same simulated instant.
type Host interface {
	// Device looks up a robot device by name.
	Device(name string) (DeviceTag, bool)
	// EnableSensor starts sampling a sensor every samplingMs.
	EnableSensor(tag DeviceTag, samplingMs int)
	// SensorValue returns the latest raw sensor value.
	SensorValue(tag DeviceTag) float64
	// SetVelocity sets a wheel motor's angular velocity in rad/s.
	SetVelocity(tag DeviceTag, v float64)

	// NodeByDef looks up a scene node by its definition name.
	NodeByDef(def string) (NodeRef, bool)
	// Self returns the node of the controlled robot.
	Self() NodeRef
	// Position returns a node's position in world coordinates.
	Position(ref NodeRef) r3.Vec

	// Step advances the simulation by durationMs. It returns false when the
	// simulation is shutting down.
	Step(durationMs int) bool
}

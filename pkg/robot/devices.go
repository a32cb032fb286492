// Package robot provides the sensing primitives of the box-finding robot.
package robot

import "fmt"

// NumSensors is the number of proximity sensors on the robot.
const NumSensors = 8

// MaxBoxes is the largest number of boxes the controller tracks.
const MaxBoxes = 20

// SensorName identifies a proximity sensor device.
type SensorName string

// Wheel motor device names.
const (
	LeftWheel  = "left wheel motor"
	RightWheel = "right wheel motor"
)

// AllSensors returns all proximity sensor names in index order (ps0..ps7).
func AllSensors() []SensorName {
	names := make([]SensorName, NumSensors)
	for i := range names {
		names[i] = SensorName(fmt.Sprintf("ps%d", i))
	}
	return names
}

// BoxName returns the scene name of the box with the given 1-based index,
// e.g. BoxName("BOX", 5) == "BOX05".
func BoxName(prefix string, index int) string {
	return fmt.Sprintf("%s%02d", prefix, index)
}

// AllBoxes returns box names 1..n with the given prefix.
func AllBoxes(prefix string, n int) []string {
	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		names = append(names, BoxName(prefix, i))
	}
	return names
}

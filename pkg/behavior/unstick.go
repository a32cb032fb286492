package behavior

// NumDirections is the number of escape maneuvers cycled through when stuck.
const NumDirections = 4

// MaxRetries is the number of escape attempts made per direction.
const MaxRetries = 3

var unstickTable = [NumDirections]WheelCommand{
	{Left: 1.0, Right: -0.4},
	{Left: -0.4, Right: 1.0},
	{Left: 1.0, Right: 0.4},
	{Left: 0.4, Right: 1.0},
}

// Unstick returns the escape maneuver for a direction index in 0..3.
// The caller wraps the index; other values panic.
func Unstick(direction int) WheelCommand {
	return unstickTable[direction]
}

package robot

const (
	// SensorBias is subtracted from every raw proximity value.
	SensorBias = 60.0
	// SensorThreshold is the normalized value above which a sensor counts as triggered.
	SensorThreshold = 1000.0
)

// Readings holds normalized proximity values indexed by sensor (ps0..ps7).
type Readings [NumSensors]float64

// Normalize converts a raw proximity value to the zero-centered scale.
func Normalize(raw float64) float64 {
	return raw - SensorBias
}

// NormalizeAll normalizes a full set of raw readings.
func NormalizeAll(raw [NumSensors]float64) Readings {
	var r Readings
	for i, v := range raw {
		r[i] = Normalize(v)
	}
	return r
}

// Triggered reports whether sensor i sees an obstacle.
func (r Readings) Triggered(i int) bool {
	return r[i] > SensorThreshold
}

// Any reports whether at least one of the given sensors is triggered.
func (r Readings) Any(sensors ...int) bool {
	for _, i := range sensors {
		if r.Triggered(i) {
			return true
		}
	}
	return false
}

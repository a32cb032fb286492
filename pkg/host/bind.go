package host

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/gwillem/boxbot/pkg/robot"
)

// ErrMissingDevice is returned when a required sensor or motor is absent.
var ErrMissingDevice = errors.New("missing device")

// Bindings are the resolved handles the control loop works with.
type Bindings struct {
	Sensors [robot.NumSensors]DeviceTag
	Left    DeviceTag
	Right   DeviceTag
	Self    NodeRef
	Boxes   Boxes
	Missing []string // box names that did not resolve
}

// Bind resolves every device and box named by cfg, enables the proximity
// sensors and stops both wheels. A missing sensor or motor is fatal; a
// missing box is logged and left out of tracking.
func Bind(h Host, cfg *robot.Config, logger *log.Logger) (*Bindings, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b := &Bindings{}

	for i, name := range robot.AllSensors() {
		tag, ok := h.Device(string(name))
		if !ok {
			return nil, fmt.Errorf("sensor %s: %w", name, ErrMissingDevice)
		}
		h.EnableSensor(tag, cfg.TickMs)
		b.Sensors[i] = tag
	}

	var ok bool
	if b.Left, ok = h.Device(robot.LeftWheel); !ok {
		return nil, fmt.Errorf("motor %q: %w", robot.LeftWheel, ErrMissingDevice)
	}
	if b.Right, ok = h.Device(robot.RightWheel); !ok {
		return nil, fmt.Errorf("motor %q: %w", robot.RightWheel, ErrMissingDevice)
	}
	h.SetVelocity(b.Left, 0)
	h.SetVelocity(b.Right, 0)

	b.Self = h.Self()

	for _, name := range robot.AllBoxes(cfg.BoxPrefix, cfg.BoxCount) {
		ref, ok := h.NodeByDef(name)
		if !ok {
			logger.Warn("cannot access box", "box", name)
			b.Missing = append(b.Missing, name)
			continue
		}
		logger.Debug("tracking box", "box", name)
		b.Boxes = append(b.Boxes, Box{Name: name, Ref: ref})
	}

	if cfg.BoxCount > 0 && len(b.Boxes) == 0 {
		logger.Warn("no boxes resolved, the light box can never be found", "prefix", cfg.BoxPrefix)
	}

	return b, nil
}

// ReadSensors returns the raw values of all proximity sensors.
func (b *Bindings) ReadSensors(h Host) [robot.NumSensors]float64 {
	var raw [robot.NumSensors]float64
	for i, tag := range b.Sensors {
		raw[i] = h.SensorValue(tag)
	}
	return raw
}

// Drive sets both wheel velocities.
func (b *Bindings) Drive(h Host, left, right float64) {
	h.SetVelocity(b.Left, left)
	h.SetVelocity(b.Right, right)
}

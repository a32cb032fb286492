package control

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/boxbot/pkg/behavior"
	"github.com/gwillem/boxbot/pkg/host"
	"github.com/gwillem/boxbot/pkg/robot"
)

// Run executes the control loop until the host's Step reports shutdown.
// Each decision reads sensors, snapshots the boxes, updates stillness from
// the robot position, commands the wheels and advances the host. The box
// snapshot taken before actuation is compared with the one after the next
// step to detect the light box.
func (c *Controller) Run() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrRunning
	}
	c.running = true
	c.mu.Unlock()

	l := loop{prev: c.host.Position(c.bind.Self)}
	defer func() { c.shutdown(l.elapsed) }()

	c.log(0, "Control loop started at %d ms per tick, tracking %d boxes", c.cfg.TickMs, len(c.bind.Boxes))
	c.logger.Info("control loop started",
		"tick_ms", c.cfg.TickMs,
		"boxes", c.bind.Boxes.Names(),
		"legacy_double_step", c.cfg.LegacyDoubleStep)

	for {
		if !c.advance(&l) {
			return nil
		}
		boxes := c.bind.Boxes.Snapshot(c.host)
		if l.before != nil {
			c.detect(&l, boxes)
		}

		c.step(&l)
		l.before = boxes

		if c.cfg.LegacyDoubleStep {
			if !c.advance(&l) {
				return nil
			}
			c.detect(&l, c.bind.Boxes.Snapshot(c.host))
			l.before = nil
		}
	}
}

// loop is the per-run bookkeeping owned by Run.
type loop struct {
	tick     int
	elapsed  time.Duration
	prev     r3.Vec     // robot position at the previous decision
	before   host.Boxes // box snapshot taken before the last actuation
	foundBox string
}

func (c *Controller) advance(l *loop) bool {
	if !c.host.Step(c.cfg.TickMs) {
		return false
	}
	l.elapsed += time.Duration(c.cfg.TickMs) * time.Millisecond
	return true
}

// detect latches found when any box moved between the two snapshots.
func (c *Controller) detect(l *loop, after host.Boxes) {
	if c.arbiter.Found() {
		return
	}
	moved, box := host.FirstDisplaced(l.before, after)
	if !moved {
		return
	}
	c.arbiter.MarkFound()
	l.foundBox = box.Name
	c.log(l.elapsed, "Found the light box (%s)!", box.Name)
	c.logger.Info("light box found",
		"box", box.Name,
		"x", box.Position.X, "y", box.Position.Y, "z", box.Position.Z,
		"elapsed", l.elapsed)
}

// step makes one decision and commands the wheels.
func (c *Controller) step(l *loop) {
	l.tick++

	readings := robot.NormalizeAll(c.bind.ReadSensors(c.host))
	pos := c.host.Position(c.bind.Self)
	still := robot.Still(pos, l.prev)
	l.prev = pos

	attempt := c.arbiter.State().Retries + 1
	d := c.arbiter.Step(readings, still)
	cmd := d.Command.Scale(c.cfg.WheelScale)
	c.bind.Drive(c.host, cmd.Left, cmd.Right)

	bs := c.arbiter.State()
	if d.Rule == behavior.RuleUnstick {
		c.log(l.elapsed, "Robot stuck! Adjusting... (attempt %d of %d)", attempt, behavior.MaxRetries)
		c.logger.Warn("robot stuck",
			"attempt", attempt,
			"direction", bs.Direction,
			"command", d.Command.String())
	}
	c.logger.Debug("tick",
		"tick", l.tick,
		"rule", d.Rule.String(),
		"command", cmd.String(),
		"still_ms", bs.StillMs)

	s := State{
		Tick:      l.tick,
		Elapsed:   l.elapsed,
		Readings:  readings,
		Position:  pos,
		Still:     still,
		Decision:  d,
		Command:   cmd,
		Behavior:  bs,
		FoundBox:  l.foundBox,
		Timestamp: time.Now(),
	}
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.sendState(s)
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		select {
		case c.stateCh <- s:
		default:
		}
	}
}

func (c *Controller) shutdown(at time.Duration) {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	c.bind.Drive(c.host, 0, 0)
	c.log(at, "Control loop stopped")
	c.logger.Info("control loop stopped", "found", c.arbiter.Found())
}

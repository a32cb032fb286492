// Package control runs the box-finding control loop against a host.
package control

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/boxbot/pkg/behavior"
	"github.com/gwillem/boxbot/pkg/host"
	"github.com/gwillem/boxbot/pkg/robot"
)

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("already running")

// State is a copy of the loop state after one tick.
type State struct {
	Tick      int
	Elapsed   time.Duration // simulated time
	Readings  robot.Readings
	Position  r3.Vec
	Still     bool
	Decision  behavior.Decision
	Command   behavior.WheelCommand // scaled, as sent to the motors
	Behavior  behavior.State
	FoundBox  string // name of the box whose displacement latched found
	Timestamp time.Time
}

// Controller manages the control loop.
type Controller struct {
	host    host.Host
	bind    *host.Bindings
	arbiter *behavior.Arbiter
	cfg     robot.Config
	logger  *log.Logger

	mu      sync.Mutex
	running bool
	state   State
	stateCh chan State
	logCh   chan string
}

// Config holds configuration for the controller.
type Config struct {
	Host   host.Host
	Robot  *robot.Config
	Logger *log.Logger // nil discards structured logs
}

// NewController binds the host devices and creates a controller.
func NewController(cfg Config) (*Controller, error) {
	rc := robot.DefaultConfig()
	if cfg.Robot != nil {
		copied := *cfg.Robot
		copied.Defaults()
		rc = &copied
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b, err := host.Bind(cfg.Host, rc, logger)
	if err != nil {
		return nil, fmt.Errorf("bind devices: %w", err)
	}

	return &Controller{
		host:    cfg.Host,
		bind:    b,
		arbiter: behavior.NewArbiter(rc.TickMs),
		cfg:     *rc,
		logger:  logger,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}, nil
}

// Bindings returns the resolved device and box handles.
func (c *Controller) Bindings() *host.Bindings {
	return c.bind
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// TickMs returns the control period.
func (c *Controller) TickMs() int {
	return c.cfg.TickMs
}

// State returns the state after the most recent tick.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// log stamps a line with the simulated time it describes.
func (c *Controller) log(at time.Duration, format string, args ...any) {
	msg := fmt.Sprintf("[%8.2fs] %s", at.Seconds(), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

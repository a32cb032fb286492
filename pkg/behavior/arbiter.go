package behavior

import "github.com/gwillem/boxbot/pkg/robot"

// StuckAfterMs is how long the robot must be still before an escape maneuver fires.
const StuckAfterMs = 1100

// Rule identifies which behavior produced a decision.
type Rule int

const (
	RuleUnstick Rule = iota
	RuleFound
	RulePincerRight
	RulePincerLeft
	RuleFront
	RuleCruise
)

var ruleNames = map[Rule]string{
	RuleUnstick:     "unstick",
	RuleFound:       "found",
	RulePincerRight: "pincer-right",
	RulePincerLeft:  "pincer-left",
	RuleFront:       "front",
	RuleCruise:      "cruise",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// State is the arbiter state carried across ticks.
type State struct {
	StillMs   int  // continuous stillness, reset on motion
	Retries   int  // escape attempts in the current direction, 0..2
	Direction int  // escape maneuver index, 0..3
	Found     bool // light box displaced; never reset
}

// Decision is the outcome of one tick.
type Decision struct {
	Command   WheelCommand // unscaled
	Rule      Rule
	Corrected bool // anti-reverse override applied
}

// rule is one entry of the priority list. apply may mutate arbiter state.
type rule struct {
	name  Rule
	match func(a *Arbiter, r robot.Readings) bool
	apply func(a *Arbiter) WheelCommand
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		name:  RuleUnstick,
		match: func(a *Arbiter, _ robot.Readings) bool { return !a.state.Found && a.state.StillMs >= a.stuckAfterMs },
		apply: (*Arbiter).escape,
	},
	{
		name:  RuleFound,
		match: func(a *Arbiter, _ robot.Readings) bool { return a.state.Found },
		apply: func(*Arbiter) WheelCommand { return spinCCW },
	},
	{
		name:  RulePincerRight,
		match: func(_ *Arbiter, r robot.Readings) bool { return r.Any(7, 0, 1) && r.Any(2, 3) },
		apply: func(*Arbiter) WheelCommand { return spinCCW },
	},
	{
		name:  RulePincerLeft,
		match: func(_ *Arbiter, r robot.Readings) bool { return r.Any(7, 0, 6) && r.Any(4, 5) },
		apply: func(*Arbiter) WheelCommand { return spinCW },
	},
	{
		name:  RuleFront,
		match: func(_ *Arbiter, r robot.Readings) bool { return r.Any(7, 0) },
		apply: func(*Arbiter) WheelCommand { return spinCW },
	},
	{
		name:  RuleCruise,
		match: func(*Arbiter, robot.Readings) bool { return true },
		apply: func(*Arbiter) WheelCommand { return cruise },
	},
}

// Arbiter owns the behavior state and turns per-tick perception into wheel commands.
type Arbiter struct {
	tickMs       int
	stuckAfterMs int
	state        State
}

// NewArbiter creates an arbiter for a loop advancing tickMs per decision.
func NewArbiter(tickMs int) *Arbiter {
	return &Arbiter{
		tickMs:       tickMs,
		stuckAfterMs: StuckAfterMs,
	}
}

// State returns a copy of the current state.
func (a *Arbiter) State() State {
	return a.state
}

// Found reports whether the light box has been found.
func (a *Arbiter) Found() bool {
	return a.state.Found
}

// MarkFound latches the found flag. It returns true only on the first call.
func (a *Arbiter) MarkFound() bool {
	if a.state.Found {
		return false
	}
	a.state.Found = true
	return true
}

// Step runs one tick: stillness bookkeeping, rule selection and the
// anti-reverse correction.
func (a *Arbiter) Step(r robot.Readings, still bool) Decision {
	a.track(still)

	var d Decision
	for _, rl := range rules {
		if rl.match(a, r) {
			d.Rule = rl.name
			d.Command = rl.apply(a)
			break
		}
	}

	if d.Command.Reversing() {
		d.Command = correctReverse(a.state.Direction)
		d.Corrected = true
	}
	return d
}

func (a *Arbiter) track(still bool) {
	if !a.state.Found && still {
		a.state.StillMs += a.tickMs
		return
	}
	a.state.StillMs = 0
	a.state.Retries = 0
}

// escape fires one unstick attempt, moving to the next direction after
// MaxRetries attempts, and re-arms the stillness timer.
func (a *Arbiter) escape() WheelCommand {
	a.state.Retries++
	if a.state.Retries >= MaxRetries {
		a.state.Direction = (a.state.Direction + 1) % NumDirections
		a.state.Retries = 0
	}
	a.state.StillMs = 0
	return Unstick(a.state.Direction)
}

// correctReverse replaces a symmetric reverse with a forward arc whose side
// alternates with the escape direction.
func correctReverse(direction int) WheelCommand {
	if direction%2 == 0 {
		return arcRight
	}
	return arcLeft
}

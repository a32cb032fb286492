// Package boxbot is a reactive controller for a two-wheeled robot that
// wanders a pen of boxes until it pushes the one light box.
//
// The controller reads eight proximity sensors each tick, picks a wheel
// command from a fixed priority of rules (escape when stuck, spin once the
// light box has moved, turn away from obstacles, otherwise drive forward)
// and watches every box for displacement. It runs against any host that
// implements host.Host; a small built-in arena simulator is included.
//
// # Installation
//
//	go install github.com/gwillem/boxbot/cmd/boxbot@latest
//
// # Usage
//
// Optionally write a configuration file:
//
//	boxbot setup
//
// Then run the robot in the simulated arena:
//
//	boxbot run
//	boxbot run --headless --duration 2m
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/boxbot: CLI with run, setup and inspect commands
//   - pkg/robot: Sensor naming, normalization and configuration
//   - pkg/behavior: Rule arbiter and escape maneuvers
//   - pkg/host: Simulator interface and device binding
//   - pkg/control: Control loop
//   - pkg/arena: Built-in arena simulator
package boxbot

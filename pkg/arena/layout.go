package arena

import (
	_ "embed"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLayout []byte

// Layout describes an arena: its size, where the robot starts and the boxes.
type Layout struct {
	Width float64   `yaml:"width"` // X extent in meters, centered on the origin
	Depth float64   `yaml:"depth"` // Z extent in meters, centered on the origin
	Robot RobotPose `yaml:"robot"`
	Boxes []BoxSpec `yaml:"boxes"`
}

// RobotPose is the robot's starting pose.
type RobotPose struct {
	Position [3]float64 `yaml:"position"`
	Heading  float64    `yaml:"heading"` // degrees, 0 faces +X
}

// BoxSpec is one box in the layout.
type BoxSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Size     float64    `yaml:"size"` // edge length in meters
	Light    bool       `yaml:"light,omitempty"`
}

// DefaultLayout returns the embedded default arena.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(defaultLayout)
}

// LoadLayout reads an arena layout from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLayout(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(raw []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks sizes, names and that everything starts inside the walls.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Depth <= 0 {
		return fmt.Errorf("arena size must be positive, got %gx%g", l.Width, l.Depth)
	}
	if !l.inside(vec(l.Robot.Position), RobotRadius) {
		return fmt.Errorf("robot starts outside the arena at %v", l.Robot.Position)
	}

	seen := make(map[string]bool, len(l.Boxes))
	lights := 0
	for _, b := range l.Boxes {
		if b.Name == "" {
			return fmt.Errorf("box at %v has no name", b.Position)
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate box %s", b.Name)
		}
		seen[b.Name] = true
		if b.Size <= 0 {
			return fmt.Errorf("box %s: size must be positive", b.Name)
		}
		if !l.inside(vec(b.Position), b.Size/2) {
			return fmt.Errorf("box %s lies outside the arena", b.Name)
		}
		if b.Light {
			lights++
		}
	}
	if lights > 1 {
		return fmt.Errorf("layout has %d light boxes, want at most one", lights)
	}
	return nil
}

// LightBox returns the name of the light box, if the layout has one.
func (l *Layout) LightBox() (string, bool) {
	for _, b := range l.Boxes {
		if b.Light {
			return b.Name, true
		}
	}
	return "", false
}

func (l *Layout) inside(p r3.Vec, margin float64) bool {
	return p.X-margin >= -l.Width/2 && p.X+margin <= l.Width/2 &&
		p.Z-margin >= -l.Depth/2 && p.Z+margin <= l.Depth/2
}

func vec(p [3]float64) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

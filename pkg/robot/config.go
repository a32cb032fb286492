package robot

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultConfigFile = "boxbot.json"

// Default configuration values.
const (
	DefaultTickMs     = 64
	DefaultWheelScale = 6.28
	DefaultBoxPrefix  = "BOX"
	DefaultBoxCount   = MaxBoxes
)

// Config holds the controller configuration
type Config struct {
	TickMs     int     `json:"tick_ms"`
	WheelScale float64 `json:"wheel_scale"` // rad/s at a unit wheel command
	BoxPrefix  string  `json:"box_prefix"`
	BoxCount   int     `json:"box_count"`

	// LegacyDoubleStep advances the host twice per decision, once before
	// reading sensors and once before comparing box snapshots.
	LegacyDoubleStep bool `json:"legacy_double_step,omitempty"`

	// Arena is an optional arena layout file for the built-in simulator.
	Arena string `json:"arena,omitempty"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults fills zero-valued fields with their defaults.
func (c *Config) Defaults() {
	if c.TickMs == 0 {
		c.TickMs = DefaultTickMs
	}
	if c.WheelScale == 0 {
		c.WheelScale = DefaultWheelScale
	}
	if c.BoxPrefix == "" {
		c.BoxPrefix = DefaultBoxPrefix
	}
	if c.BoxCount == 0 {
		c.BoxCount = DefaultBoxCount
	}
}

// Validate checks that the config can drive the control loop.
func (c *Config) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if c.WheelScale <= 0 {
		return fmt.Errorf("wheel_scale must be positive, got %g", c.WheelScale)
	}
	if c.BoxCount < 0 || c.BoxCount > MaxBoxes {
		return fmt.Errorf("box_count must be within 0..%d, got %d", MaxBoxes, c.BoxCount)
	}
	return nil
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file and applies defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the given config file exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

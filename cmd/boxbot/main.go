package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/gwillem/boxbot/pkg/arena"
	"github.com/gwillem/boxbot/pkg/robot"
)

type Options struct {
	Config  string `short:"c" long:"config" description:"Configuration file (default: boxbot.json)"`
	Verbose bool   `short:"v" long:"verbose" description:"Log every control tick"`

	Run     RunCommand     `command:"run" description:"Run the controller in the simulated arena"`
	Setup   SetupCommand   `command:"setup" description:"Create or edit the configuration file"`
	Inspect InspectCommand `command:"inspect" description:"Bind to the arena and report which devices and boxes resolve"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "BoxBot - reactive controller that wanders an arena until it finds the light box"
	opts.Config = robot.DefaultConfigFile

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "boxbot",
	})
	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig reads the config file, falling back to defaults when it does not exist.
func loadConfig() (*robot.Config, error) {
	if !robot.ConfigExists(opts.Config) {
		return robot.DefaultConfig(), nil
	}
	cfg, err := robot.LoadConfigFrom(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadLayout picks the arena from the flag, then the config, then the built-in default.
func loadLayout(flagPath string, cfg *robot.Config) (*arena.Layout, error) {
	path := flagPath
	if path == "" {
		path = cfg.Arena
	}
	if path == "" {
		return arena.DefaultLayout()
	}
	return arena.LoadLayout(path)
}

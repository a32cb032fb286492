package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/boxbot/pkg/robot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("BoxBot Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━"))
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(warnStyle.Render(err.Error()))
		fmt.Println("Starting from defaults.")
		fmt.Println()
		cfg = robot.DefaultConfig()
	} else if robot.ConfigExists(opts.Config) {
		fmt.Printf("Editing %s\n\n", opts.Config)
	}

	if err := editConfig(cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Setup cancelled.")
			return nil
		}
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveTo(opts.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Start the robot with: " + headerStyle.Render("boxbot run"))

	return nil
}

func editConfig(cfg *robot.Config) error {
	tick := strconv.Itoa(cfg.TickMs)
	scale := strconv.FormatFloat(cfg.WheelScale, 'g', -1, 64)
	count := strconv.Itoa(cfg.BoxCount)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(subHeaderStyle.Render("Control loop")),
			huh.NewInput().
				Title("Tick (ms)").
				Description("Simulation step per control decision").
				Value(&tick).
				Validate(positiveInt),
			huh.NewInput().
				Title("Wheel scale").
				Description("Wheel speed in rad/s for a full-speed command").
				Value(&scale).
				Validate(positiveFloat),
			huh.NewConfirm().
				Title("Legacy double step?").
				Description("Advance the simulation twice per decision").
				Value(&cfg.LegacyDoubleStep),
		),
		huh.NewGroup(
			huh.NewNote().
				Title(subHeaderStyle.Render("Boxes")),
			huh.NewInput().
				Title("Box name prefix").
				Description("Boxes are looked up as <prefix>01, <prefix>02, ...").
				Value(&cfg.BoxPrefix).
				Validate(nonEmpty),
			huh.NewInput().
				Title("Box count").
				Description(fmt.Sprintf("Number of boxes to track, at most %d", robot.MaxBoxes)).
				Value(&count).
				Validate(boxCount),
			huh.NewInput().
				Title("Arena layout").
				Description("YAML layout file, empty for the built-in arena").
				Value(&cfg.Arena),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	// Validated above.
	cfg.TickMs, _ = strconv.Atoi(tick)
	cfg.WheelScale, _ = strconv.ParseFloat(scale, 64)
	cfg.BoxCount, _ = strconv.Atoi(count)
	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

func positiveFloat(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return errors.New("required")
	}
	return nil
}

func boxCount(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > robot.MaxBoxes {
		return fmt.Errorf("enter a number from 1 to %d", robot.MaxBoxes)
	}
	return nil
}

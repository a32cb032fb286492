package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/boxbot/pkg/arena"
	"github.com/gwillem/boxbot/pkg/host"
	"github.com/gwillem/boxbot/pkg/robot"
)

type InspectCommand struct {
	Arena string `long:"arena" description:"Arena layout file (YAML)"`
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	tableNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableLightStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Padding(0, 1)
	tableMissStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Padding(0, 1)
)

func (c *InspectCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout, err := loadLayout(c.Arena, cfg)
	if err != nil {
		return err
	}

	world := arena.New(layout, arena.Options{})
	b, err := host.Bind(world, cfg, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("BoxBot Inspect"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	source := "built-in arena"
	if c.Arena != "" {
		source = c.Arena
	} else if cfg.Arena != "" {
		source = cfg.Arena
	}
	fmt.Printf("Arena:   %s (%.2f x %.2f m)\n", source, layout.Width, layout.Depth)
	fmt.Printf("Robot:   (%.3f, %.3f) heading %.0f°\n", layout.Robot.Position[0], layout.Robot.Position[2], layout.Robot.Heading)
	fmt.Printf("Tick:    %d ms, wheel scale %g rad/s\n", cfg.TickMs, cfg.WheelScale)
	if light, ok := layout.LightBox(); ok {
		fmt.Printf("Light:   %s\n", successStyle.Render(light))
	} else {
		fmt.Printf("Light:   %s\n", warnStyle.Render("none, the robot will wander until stopped"))
	}
	fmt.Println()

	fmt.Println(subHeaderStyle.Render("Devices"))
	sensors := make([]string, 0, robot.NumSensors)
	for _, name := range robot.AllSensors() {
		sensors = append(sensors, string(name))
	}
	fmt.Printf("  sensors: %s\n", strings.Join(sensors, " "))
	fmt.Printf("  motors:  %s, %s\n", robot.LeftWheel, robot.RightWheel)
	fmt.Println()

	fmt.Println(subHeaderStyle.Render(fmt.Sprintf("Boxes (%d of %d tracked)", len(b.Boxes), cfg.BoxCount)))
	fmt.Println(renderBoxes(world, b))

	if len(b.Missing) > 0 {
		fmt.Println(tableMissStyle.Render("Missing: " + strings.Join(b.Missing, ", ")))
	}
	return nil
}

func renderBoxes(world *arena.Arena, b *host.Bindings) string {
	light := make(map[string]bool)
	for _, bs := range world.Snapshot().Boxes {
		light[bs.Name] = bs.Light
	}

	var rows [][]string
	for _, box := range b.Boxes.Snapshot(world) {
		kind := "heavy"
		if light[box.Name] {
			kind = "light"
		}
		rows = append(rows, []string{
			box.Name,
			fmt.Sprintf("%.3f", box.Position.X),
			fmt.Sprintf("%.3f", box.Position.Y),
			fmt.Sprintf("%.3f", box.Position.Z),
			kind,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Box", "X", "Y", "Z", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch {
			case col == 0:
				return tableNameStyle
			case col == 4 && row >= 0 && row < len(rows) && rows[row][4] == "light":
				return tableLightStyle
			default:
				return tableCellStyle
			}
		})
	return t.Render()
}

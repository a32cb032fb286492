package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/boxbot/pkg/arena"
	"github.com/gwillem/boxbot/pkg/control"
	"github.com/gwillem/boxbot/pkg/robot"
)

type RunCommand struct {
	Arena    string        `long:"arena" description:"Arena layout file (YAML)"`
	Headless bool          `long:"headless" description:"Log to stderr instead of showing the dashboard"`
	Realtime bool          `long:"realtime" description:"Pace the simulation to the wall clock (always on with the dashboard)"`
	Duration time.Duration `long:"duration" description:"Stop after this much simulated time, e.g. 2m"`
}

const (
	headerHeight = 2 // title + blank line
	statusHeight = 2 // status row + blank
	sensorHeight = 5 // sensor table
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

var wheelColors = map[string]string{
	robot.LeftWheel:  "46", // green
	robot.RightWheel: "51", // cyan
}

var wheelOrder = []string{robot.LeftWheel, robot.RightWheel}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	foundStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	triggeredStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Padding(0, 1)
	sensorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	sensorHdrStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
)

type runModel struct {
	ctrl     *control.Controller
	world    *arena.Arena
	chart    *streamlinechart.Model
	width    int // terminal width
	height   int // terminal height
	logs     []string
	state    control.State
	lastTick int
	quitting bool
}

func (m *runModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg control.State
type logMsg string

func waitForState(ctrl *control.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *control.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

func (m *runModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 12
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - statusHeight - sensorHeight - legendHeight - footerHeight - borderSize
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *runModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialRunModel(ctrl *control.Controller, world *arena.Arena, scale float64) runModel {
	// headroom above the largest wheel command
	limit := scale * 1.1
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(-limit, limit),
	)
	for _, name := range wheelOrder {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(wheelColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return runModel{
		ctrl:  ctrl,
		world: world,
		chart: &chart,
	}
}

func (m runModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.world.Stop()
			return m, tea.Quit
		}

	case stateMsg:
		state := control.State(msg)
		// Only plot new ticks
		if state.Tick != m.lastTick {
			m.chart.PushDataSet(robot.LeftWheel, state.Command.Left)
			m.chart.PushDataSet(robot.RightWheel, state.Command.Right)
			m.chart.DrawAll()
			m.lastTick = state.Tick
		}
		m.state = state
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m runModel) View() string {
	if m.quitting {
		return "Simulation stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("BoxBot"))
	sb.WriteString(fmt.Sprintf(" - %d ms/tick", m.ctrl.TickMs()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(renderStatus(m.state))
	sb.WriteString("\n\n")

	sb.WriteString(renderSensors(m.state.Readings))
	sb.WriteString("\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20)).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderStatus(s control.State) string {
	b := s.Behavior
	status := fmt.Sprintf("tick %d  t=%.2fs  rule %-13s  still %4d ms  retries %d  direction %d",
		s.Tick, s.Elapsed.Seconds(), s.Decision.Rule, b.StillMs, b.Retries, b.Direction)
	if b.Found {
		return statusStyle.Render(status) + "  " + foundStyle.Render("FOUND "+s.FoundBox)
	}
	return statusStyle.Render(status)
}

func renderSensors(r robot.Readings) string {
	headers := make([]string, robot.NumSensors)
	row := make([]string, robot.NumSensors)
	for i, name := range robot.AllSensors() {
		headers[i] = string(name)
		row[i] = fmt.Sprintf("%6.0f", r[i])
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Row(row...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return sensorHdrStyle
			}
			if r.Triggered(col) {
				return triggeredStyle
			}
			return sensorStyle
		})
	return t.Render()
}

func renderLegend() string {
	var items []string
	for _, name := range wheelOrder {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(wheelColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *RunCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	layout, err := loadLayout(c.Arena, cfg)
	if err != nil {
		return err
	}

	world := arena.New(layout, arena.Options{
		Realtime:    c.Realtime || !c.Headless,
		MaxDuration: c.Duration,
	})

	if c.Headless {
		return c.runHeadless(cfg, world)
	}

	// The dashboard owns the terminal; structured logs are dropped and the
	// controller's log channel feeds the log box instead.
	ctrl, err := control.NewController(control.Config{
		Host:   world,
		Robot:  cfg,
		Logger: newLogger(io.Discard),
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Run()
	}()

	p := tea.NewProgram(initialRunModel(ctrl, world, cfg.WheelScale), tea.WithAltScreen())
	_, err = p.Run()
	world.Stop()
	if runErr := <-done; runErr != nil {
		return runErr
	}
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func (c *RunCommand) runHeadless(cfg *robot.Config, world *arena.Arena) error {
	logger := newLogger(os.Stderr)

	ctrl, err := control.NewController(control.Config{
		Host:   world,
		Robot:  cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		world.Stop()
	}()

	if err := ctrl.Run(); err != nil {
		return err
	}

	s := ctrl.State()
	w := world.Snapshot()
	logger.Info("simulation finished",
		"ticks", s.Tick,
		"elapsed", w.Elapsed,
		"found", s.Behavior.Found,
		"box", s.FoundBox,
		"x", w.Robot.X, "z", w.Robot.Z)
	return nil
}

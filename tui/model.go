// Package tui renders a running swarm in the terminal on a braille canvas.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/sim"
)

const (
	frameRate  = 30
	statsWidth = 34

	defaultCols = 80
	defaultRows = 24

	// pointerStep is how far one arrow press moves the virtual pointer, in
	// world units.
	pointerStep = 20
)

// TickMsg advances the simulation by one frame.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model for the terminal view.
type Model struct {
	runner *sim.Runner
	canvas *Canvas
	camera *camera.Camera

	// virtual pointer in world coordinates
	pointerX, pointerY float32
	pointerOn          bool
}

// NewModel creates a terminal view over runner.
func NewModel(runner *sim.Runner) Model {
	b := runner.Substrate().Bounds()
	m := Model{
		runner:   runner,
		pointerX: b.Width / 2,
		pointerY: b.Height / 2,
	}
	m.resize(defaultCols, defaultRows)
	return m
}

// Run starts the terminal program and blocks until the user quits.
func Run(runner *sim.Runner) error {
	_, err := tea.NewProgram(NewModel(runner), tea.WithAltScreen()).Run()
	return err
}

// resize fits the canvas to a terminal of cols x rows cells.
func (m *Model) resize(cols, rows int) {
	m.canvas = NewCanvas(cols-statsWidth, rows-2)
	dw, dh := m.canvas.Dots()
	b := m.runner.Substrate().Bounds()
	if m.camera == nil {
		m.camera = camera.New(float32(dw), float32(dh), b.Width, b.Height)
		return
	}
	m.camera.Resize(float32(dw), float32(dh), b.Width, b.Height)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.runner.TogglePause()
		case "n":
			m.runner.NextMessage()
		case "c":
			m.runner.Scatter()
		case "m":
			m.pointerOn = !m.pointerOn
		case "up", "k":
			m.movePointer(0, -pointerStep)
		case "down", "j":
			m.movePointer(0, pointerStep)
		case "left", "h":
			m.movePointer(-pointerStep, 0)
		case "right", "l":
			m.movePointer(pointerStep, 0)
		case "+", "=":
			m.runner.SetStepsPerUpdate(m.runner.StepsPerUpdate() + 1)
		case "-", "_":
			m.runner.SetStepsPerUpdate(m.runner.StepsPerUpdate() - 1)
		}
		m.runner.SetPointer(m.pointerX, m.pointerY, m.pointerOn)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.runner.Update()
		return m, tick()
	}
	return m, nil
}

// movePointer shifts the virtual pointer, keeping it inside the viewport.
func (m *Model) movePointer(dx, dy float32) {
	b := m.runner.Substrate().Bounds()
	m.pointerX = min(max(m.pointerX+dx, 0), b.Width)
	m.pointerY = min(max(m.pointerY+dy, 0), b.Height)
}

// draw plots the render buffer onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	buf := m.runner.Substrate().RenderBuffer()
	for i := 0; i+3 < len(buf); i += 4 {
		sx, sy := m.camera.WorldToScreen(buf[i], buf[i+1])
		m.canvas.Set(int(sx), int(sy))
	}
	if m.pointerOn {
		sx, sy := m.camera.WorldToScreen(m.pointerX, m.pointerY)
		m.drawCross(int(sx), int(sy))
	}
}

func (m *Model) drawCross(x, y int) {
	for d := -2; d <= 2; d++ {
		m.canvas.Set(x+d, y)
		m.canvas.Set(x, y+d)
	}
}

func (m Model) View() string {
	m.draw()
	r := m.runner
	st := r.Substrate().Stats()

	var s strings.Builder
	s.WriteString(headerStyle.Render("SWARM") + "\n")

	status := runningStyle.Render("RUNNING")
	if r.Paused() {
		status = pausedStyle.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	message := r.Message()
	if message == "" {
		message = "(scattered)"
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Message", message)
	row("Particles", fmt.Sprint(st.Particles))
	row("Forming", fmt.Sprint(st.Forming))
	row("Floating", fmt.Sprint(st.Floating))
	row("Targets", fmt.Sprint(st.TextCoords))
	row("Tick", fmt.Sprint(r.Tick()))
	row("Speed", fmt.Sprintf("%dx", r.StepsPerUpdate()))
	pointer := "off"
	if m.pointerOn {
		pointer = fmt.Sprintf("%.0f,%.0f", m.pointerX, m.pointerY)
	}
	row("Pointer", pointer)

	if hist := r.FormingHistory(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(statsWidth-12),
			asciigraph.Caption("forming"),
		)
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause N:Next C:Scatter\nM:Pointer ←↑↓→:Move\n+/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()),
	)
}

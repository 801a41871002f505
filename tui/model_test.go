package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/sim"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	r, err := sim.New(cfg, sim.Options{
		Seed:     7,
		Width:    320,
		Height:   240,
		Count:    300,
		Messages: []string{"HI", "GO"},
	})
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return NewModel(r)
}

func press(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q returned no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", k.String())
		}
	}
}

func TestPauseAndMessageKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.runner.Paused() {
		t.Error("space did not pause")
	}

	m = press(m, runes("n"))
	if m.runner.MessageIndex() != 1 {
		t.Errorf("message index = %d, want 1", m.runner.MessageIndex())
	}

	m = press(m, runes("c"))
	if m.runner.MessageIndex() != sim.NoMessage {
		t.Errorf("message index = %d, want NoMessage", m.runner.MessageIndex())
	}
}

func TestSpeedKeys(t *testing.T) {
	m := newTestModel(t)
	start := m.runner.StepsPerUpdate()

	m = press(m, runes("+"))
	if got := m.runner.StepsPerUpdate(); got != start+1 {
		t.Errorf("steps = %d, want %d", got, start+1)
	}
	m = press(m, runes("-"))
	if got := m.runner.StepsPerUpdate(); got != start {
		t.Errorf("steps = %d, want %d", got, start)
	}
}

func TestPointerKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.runner.Substrate().Pointer().Active {
		t.Fatal("pointer active before toggle")
	}

	m = press(m, runes("m"))
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	p := m.runner.Substrate().Pointer()
	if !p.Active {
		t.Fatal("m did not activate pointer")
	}
	if p.X != 160-pointerStep || p.Y != 120-pointerStep {
		t.Errorf("pointer = (%v,%v), want (%v,%v)", p.X, p.Y, 160-pointerStep, 120-pointerStep)
	}

	for range 50 {
		m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if p := m.runner.Substrate().Pointer(); p.X != 320 {
		t.Errorf("pointer x = %v, want clamped to 320", p.X)
	}
}

func TestTickStepsRunner(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if got := next.(Model).runner.Tick(); got != 1 {
		t.Errorf("tick = %d, want 1", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	m.Update(TickMsg(time.Now()))
	if got := m.runner.Tick(); got != 1 {
		t.Errorf("paused tick = %d, want 1", got)
	}
}

func TestWindowSizeResizesCanvas(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	c := next.(Model).canvas
	if c.Width != 120-statsWidth || c.Height != 38 {
		t.Errorf("canvas = %dx%d, want %dx38", c.Width, c.Height, 120-statsWidth)
	}
}

func TestViewPlotsParticles(t *testing.T) {
	m := newTestModel(t)
	m.Update(TickMsg(time.Now()))

	v := m.View()
	for _, want := range []string{"SWARM", "HI", "RUNNING"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	lit := 0
	for _, row := range m.canvas.Grid {
		for _, r := range row {
			if r != brailleBlank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no particles plotted")
	}
}

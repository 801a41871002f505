// Package game runs the swarm in a raylib window.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/inspector"
	"github.com/pthm-cable/swarm/renderer"
	"github.com/pthm-cable/swarm/sim"
	"github.com/pthm-cable/swarm/ui"
)

const controlsLegend = "[Mouse] Repel  [N] Next  [C] Scatter  [Space] Pause  [</>] Speed  [T] Targets  [H] Panel  [RMB] Inspect  [Wheel/Arrows] Camera"

const (
	controlsWidth = 180
	// inspectorY places the inspector panel below the control panel.
	inspectorY = 190
)

func inspectorX(screenW float32) int32 {
	return int32(screenW) - inspector.PanelWidth - 10
}

// Game holds the window front end state. The window must be open before
// NewGame is called.
type Game struct {
	cfg    *config.Config
	runner *sim.Runner
	camera *camera.Camera

	// Rendering
	particles  *renderer.ParticleRenderer
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	inspector  *inspector.Inspector
	background rl.Color

	// State
	showTargets  bool
	screenWidth  float32
	screenHeight float32
}

// NewGame creates a game sized to the current window.
func NewGame(cfg *config.Config, opts sim.Options) (*Game, error) {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	opts.Width, opts.Height = w, h

	runner, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	bg := cfg.Render.Background
	return &Game{
		cfg:          cfg,
		runner:       runner,
		camera:       camera.New(w, h, w, h),
		particles:    renderer.NewParticleRenderer(cfg.Render.FormingColor, cfg.Render.FloatingColor),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(controlsWidth),
		inspector:    inspector.NewInspector(inspectorX(w), inspectorY),
		background:   rl.Color{R: bg[0], G: bg[1], B: bg[2], A: 255},
		screenWidth:  w,
		screenHeight: h,
	}, nil
}

// Update handles input and advances the simulation.
func (g *Game) Update() {
	g.handleInput()
	g.runner.Update()
}

// Runner exposes the simulation driver.
func (g *Game) Runner() *sim.Runner {
	return g.runner
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int32 {
	return g.runner.Tick()
}

// Unload releases resources and closes output files.
func (g *Game) Unload() error {
	return g.runner.Close()
}

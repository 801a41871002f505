package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/renderer"
	"github.com/pthm-cable/swarm/telemetry"
	"github.com/pthm-cable/swarm/ui"
)

// Draw renders the frame and applies control panel actions.
func (g *Game) Draw() {
	g.runner.RecordFrame()
	sub := g.runner.Substrate()

	rl.BeginDrawing()
	rl.ClearBackground(g.background)

	if g.camera.Zoom > g.camera.MinZoom {
		renderer.DrawBounds(sub.Bounds(), g.camera)
	}
	if g.showTargets {
		renderer.DrawTargets(sub.Targets(), g.camera)
	}
	g.particles.Draw(sub.RenderBuffer(), g.camera)
	g.inspector.DrawSelectionHighlight(sub, g.camera)
	renderer.DrawPointer(sub.Pointer(), sub.Params().MouseRadius, g.camera)

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and the control panel.
func (g *Game) drawUI() {
	r := g.runner
	st := r.Substrate().Stats()

	data := ui.HUDData{
		Title:   "Swarm",
		Message: r.Message(),
		Stats:   st.String(),
		Perf:    r.Perf().Summary(),
		Tick:    r.Tick(),
		Speed:   r.StepsPerUpdate(),
		FPS:     rl.GetFPS(),
		Paused:  r.Paused(),

		SettledMark: telemetry.FormedFrac,
	}
	if st.Particles > 0 {
		data.FormingFrac = float32(st.Forming) / float32(st.Particles)
	}
	if h := r.History(); len(h) > 0 {
		data.SettledFrac = float32(h[len(h)-1].SettledFrac)
	}
	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	g.inspector.Draw(r.Substrate())

	actions := g.controls.Draw(g.screenWidth, r.Paused(), r.StepsPerUpdate())
	if actions.NextMessage {
		r.NextMessage()
	}
	if actions.Scatter {
		r.Scatter()
	}
	if actions.TogglePause {
		r.TogglePause()
	}
	r.SetStepsPerUpdate(actions.Speed)
}

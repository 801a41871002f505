package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.runner.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.runner.NextMessage()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.runner.Scatter()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showTargets = !g.showTargets
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.runner.SetStepsPerUpdate(g.runner.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.runner.SetStepsPerUpdate(g.runner.StepsPerUpdate() + 1)
	}

	g.handleCameraInput()
	g.handlePointer()
	g.handleInspect()
}

// handleInspect selects the particle under a right click.
func (g *Game) handleInspect() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		return
	}
	mouse := rl.GetMousePosition()
	if g.controls.Contains(g.screenWidth, mouse.X, mouse.Y) {
		return
	}
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.inspector.Select(g.runner.Substrate(), wx, wy)
}

// handlePointer maps the mouse to the substrate pointer. The pointer is
// active while the left button is held outside the control panel.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	active := rl.IsMouseButtonDown(rl.MouseButtonLeft) &&
		!g.controls.Contains(g.screenWidth, mouse.X, mouse.Y)

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.runner.SetPointer(wx, wy, active)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h, w, h)
	g.runner.Resize(w, h)
	g.inspector.SetPosition(inspectorX(w), inspectorY)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

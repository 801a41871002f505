// Package renderer draws swarm state with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/swarm"
)

// minRadius keeps tiny particles visible when zoomed out.
const minRadius = 0.75

// ParticleRenderer renders the swarm render buffer.
type ParticleRenderer struct {
	forming  rl.Color
	floating rl.Color
}

// NewParticleRenderer creates a particle renderer with the given colors.
func NewParticleRenderer(forming, floating [3]uint8) *ParticleRenderer {
	return &ParticleRenderer{
		forming:  rl.Color{R: forming[0], G: forming[1], B: forming[2], A: 255},
		floating: rl.Color{R: floating[0], G: floating[1], B: floating[2], A: 200},
	}
}

// Draw renders every record of buf ([x, y, size, forming] per particle).
func (r *ParticleRenderer) Draw(buf []float32, cam *camera.Camera) {
	for i := 0; i+swarm.RecordSize <= len(buf); i += swarm.RecordSize {
		x, y, size := buf[i], buf[i+1], buf[i+2]
		if !cam.IsVisible(x, y, size) {
			continue
		}

		color := r.floating
		if buf[i+3] != 0 {
			color = r.forming
		}

		sx, sy := cam.WorldToScreen(x, y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, max(cam.Scale(size), minRadius), color)
	}
}

// DrawTargets marks every target point.
func DrawTargets(targets []swarm.Point, cam *camera.Camera) {
	color := rl.Color{R: 255, G: 255, B: 255, A: 40}
	for _, p := range targets {
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		rl.DrawPixelV(rl.Vector2{X: sx, Y: sy}, color)
	}
}

// DrawPointer outlines the pointer's repulsion radius while it is active.
func DrawPointer(p swarm.Pointer, radius float32, cam *camera.Camera) {
	if !p.Active {
		return
	}
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleLines(int32(sx), int32(sy), cam.Scale(radius), rl.Color{R: 255, G: 180, B: 80, A: 120})
}

// DrawBounds outlines the simulation viewport when it is not the full screen.
func DrawBounds(b swarm.Bounds, cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(b.Width, b.Height)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, rl.Color{R: 60, G: 70, B: 80, A: 255})
}

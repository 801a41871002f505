// Package inspector shows the state of one selected particle.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/swarm"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 26

	// HitRadius is the click tolerance in world units.
	HitRadius = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 220, B: 80, A: 255}
	ColorTargetLine  = rl.Color{R: 255, G: 220, B: 80, A: 90}
)

// Inspector tracks the selected particle and draws its panel.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits at the given
// screen position.
func NewInspector(panelX, panelY int32) *Inspector {
	return &Inspector{panelX: panelX, panelY: panelY}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX, ins.panelY = x, y
}

// Select picks the particle nearest the world point. Clicking empty space
// clears the selection. Returns whether a particle is now selected.
func (ins *Inspector) Select(sub *swarm.Substrate, wx, wy float32) bool {
	ins.selected, ins.hasSelected = Nearest(sub.Particles(), wx, wy, HitRadius)
	return ins.hasSelected
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected particle index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// current returns the selected particle, dropping the selection if the
// substrate no longer has it.
func (ins *Inspector) current(sub *swarm.Substrate) (swarm.Particle, bool) {
	if !ins.hasSelected {
		return swarm.Particle{}, false
	}
	if ins.selected >= sub.ParticleCount() {
		ins.Deselect()
		return swarm.Particle{}, false
	}
	return sub.Particle(ins.selected), true
}

// Draw renders the inspector panel if a particle is selected.
func (ins *Inspector) Draw(sub *swarm.Substrate) {
	p, ok := ins.current(sub)
	if !ok {
		return
	}
	fields := ExtractFields(p)

	height := int32(HeaderHeight + 2*PanelPadding + angleHeight + labelHeight*2)
	for _, f := range fields {
		height += fieldHeight(f)
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("PARTICLE #%d", ins.selected), ins.panelX+PanelPadding, ins.panelY+6, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	for _, f := range fields {
		y += DrawField(x, y, f)
	}

	y += DrawLabel(x, y, "Speed", p.Speed(), nil)
	heading := float32(math.Atan2(float64(p.VY), float64(p.VX)))
	y += DrawAngle(x, y, "Heading", heading)
	if p.Forming {
		dist := math.Hypot(float64(p.TargetX-p.X), float64(p.TargetY-p.Y))
		DrawLabel(x, y, "To target", dist, map[string]string{"fmt": "%.1f"})
	} else {
		DrawLabel(x, y, "To target", "-", nil)
	}
}

// DrawSelectionHighlight circles the selected particle and, while it is
// forming, draws a line to its target.
func (ins *Inspector) DrawSelectionHighlight(sub *swarm.Substrate, cam *camera.Camera) {
	p, ok := ins.current(sub)
	if !ok {
		return
	}
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	if p.Forming {
		tx, ty := cam.WorldToScreen(p.TargetX, p.TargetY)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: tx, Y: ty}, ColorTargetLine)
		rl.DrawCircleV(rl.Vector2{X: tx, Y: ty}, 2, ColorTargetLine)
	}
	r := max(cam.Scale(p.Size*3), 6)
	rl.DrawCircleLines(int32(sx), int32(sy), r, ColorSelection)
}

// Package ui draws the heads-up display and control panel over the swarm.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the palette and metrics shared by the HUD and the control panel.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color

	// Meter colors. FillDone replaces Fill once a meter reaches its mark.
	Track    rl.Color
	Fill     rl.Color
	FillDone rl.Color
	Mark     rl.Color

	Padding    int32
	Line       int32
	LabelWidth int32
	BarHeight  int32
	Font       int32
	HeaderFont int32
}

// DefaultTheme returns the default theme. FillDone matches the default forming color.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		Track:       rl.Color{R: 40, G: 40, B: 40, A: 255},
		Fill:        rl.Color{R: 100, G: 180, B: 220, A: 255},
		FillDone:    rl.Color{R: 120, G: 220, B: 255, A: 255},
		Mark:        rl.Color{R: 255, G: 255, B: 255, A: 160},
		Padding:     10,
		Line:        16,
		LabelWidth:  70,
		BarHeight:   10,
		Font:        12,
		HeaderFont:  14,
	}
}

// Meter is a labelled [0, 1] bar. A Mark in (0, 1] draws a tick at that
// share and switches the fill to Theme.FillDone once Value reaches it.
type Meter struct {
	Label string
	Value float32
	Mark  float32
}

func (m Meter) done() bool {
	return m.Mark > 0 && m.Value >= m.Mark
}

// Renderer draws widgets in one Theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills and outlines a panel rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawMeter draws m in a row width pixels wide and returns the next row's Y.
func (r *Renderer) DrawMeter(x, y, width int32, m Meter) int32 {
	t := r.Theme
	m.Value = min(max(m.Value, 0), 1)

	trackX := x + t.LabelWidth
	trackW := width - t.LabelWidth - 40

	fill := t.Fill
	if m.done() {
		fill = t.FillDone
	}

	rl.DrawText(m.Label, x, y, t.Font, t.Label)
	rl.DrawRectangle(trackX, y+2, trackW, t.BarHeight, t.Track)
	rl.DrawRectangle(trackX, y+2, int32(float32(trackW)*m.Value), t.BarHeight, fill)
	if m.Mark > 0 && m.Mark <= 1 {
		mx := trackX + int32(float32(trackW)*m.Mark)
		rl.DrawLine(mx, y, mx, y+t.BarHeight+4, t.Mark)
	}
	rl.DrawText(fmt.Sprintf("%.0f%%", m.Value*100), trackX+trackW+5, y, t.Font, t.Value)

	return y + t.Line + 2
}

package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelActions reports which controls were used this frame.
type PanelActions struct {
	NextMessage bool
	Scatter     bool
	TogglePause bool
	Speed       int // requested steps per update
}

// ControlsPanel renders the right-side control panel.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point lies over the visible panel.
func (c *ControlsPanel) Contains(screenW, x, y float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds(screenW))
}

func (c *ControlsPanel) bounds(screenW float32) rl.Rectangle {
	return rl.Rectangle{
		X:      screenW - float32(c.width) - 10,
		Y:      10,
		Width:  float32(c.width),
		Height: 170,
	}
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(screenW float32, paused bool, speed int) PanelActions {
	actions := PanelActions{Speed: speed}
	if !c.visible {
		return actions
	}

	r := c.renderer
	b := c.bounds(screenW)
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := b.Y + pad
	w := b.Width - 2*pad

	rl.DrawText("Controls", int32(x), int32(y), r.Theme.HeaderFont, r.Theme.Header)
	y += 22

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 28}, "Next Message") {
		actions.NextMessage = true
	}
	y += 34

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 28}, "Scatter") {
		actions.Scatter = true
	}
	y += 34

	label := "Pause"
	if paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 28}, label) {
		actions.TogglePause = true
	}
	y += 36

	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: y, Width: w - 70, Height: 16},
		"Speed", "",
		float32(speed), 1, 10,
	)
	actions.Speed = int(newSpeed + 0.5)
	rl.DrawText(fmt.Sprintf("%dx", actions.Speed), int32(x+w-24), int32(y+2), r.Theme.Font, r.Theme.Value)

	return actions
}

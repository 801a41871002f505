package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Message     string
	Stats       string // substrate diagnostic line
	Perf        string
	Tick        int32
	Speed       int
	FPS         int32
	Paused      bool
	FormingFrac float32
	SettledFrac float32
	// SettledMark is the settled share that counts as formed; 0 hides it.
	SettledMark float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	message := data.Message
	if message == "" {
		message = "(scattered)"
	}
	rl.DrawText(fmt.Sprintf("Message: %s", message), 10, 35, 16, rl.LightGray)
	rl.DrawText(data.Stats, 10, 55, 16, rl.LightGray)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 75, 16, rl.LightGray,
	)

	y := int32(97)
	y = r.DrawMeter(10, y, 240, Meter{Label: "Forming", Value: data.FormingFrac})
	y = r.DrawMeter(10, y, 240, Meter{Label: "Settled", Value: data.SettledFrac, Mark: data.SettledMark})

	if data.Perf != "" {
		rl.DrawText(data.Perf, 10, y+2, 12, rl.Gray)
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y+20, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

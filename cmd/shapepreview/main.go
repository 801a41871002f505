// Text target preview tool - shows the glyph mask and the points sampled
// from it, with sliders for the text settings.
//
// Usage: go run ./cmd/shapepreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/shape"
	"github.com/pthm-cable/swarm/swarm"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	previewW     = 720
	previewH     = 560
	panelWidth   = windowWidth - previewW - 30
)

// preview holds the current mask and its samples.
type preview struct {
	text    string
	texture rl.Texture2D
	maskW   int
	maskH   int
	points  []swarm.Point
}

func (p *preview) unload() {
	if p.texture.ID != 0 {
		rl.UnloadTexture(p.texture)
		p.texture = rl.Texture2D{}
	}
}

// build renders text with cfg and samples it.
func (p *preview) build(text string, cfg config.TextConfig) {
	p.unload()
	p.text = text

	mask := shape.RenderText(text, cfg.Height)
	b := mask.Bounds()
	p.maskW, p.maskH = b.Dx(), b.Dy()
	p.points = shape.Sample(mask, cfg.SampleGap, uint8(cfg.AlphaThreshold))
	if p.maskW == 0 || p.maskH == 0 {
		return
	}

	img := rl.NewImageFromImage(mask)
	p.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := config.Cfg().Text
	text := defaults
	messages := defaults.Messages
	if len(messages) == 0 {
		messages = []string{"SWARM"}
	}
	msgIdx := 0

	rl.InitWindow(windowWidth, windowHeight, "Text Target Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var pv preview
	defer pv.unload()
	needsRegen := true
	showMask := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			pv.build(messages[msgIdx], text)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

		// Fit the mask into the preview area
		scale := float32(1)
		if pv.maskW > 0 && pv.maskH > 0 {
			scale = min(float32(previewW)/float32(pv.maskW), float32(previewH)/float32(pv.maskH), 1)
		}
		ox := 10 + (previewW-float32(pv.maskW)*scale)/2
		oy := 10 + (previewH-float32(pv.maskH)*scale)/2

		if showMask && pv.texture.ID != 0 {
			rl.DrawTextureEx(pv.texture, rl.Vector2{X: ox, Y: oy}, 0, scale, rl.Color{R: 60, G: 70, B: 100, A: 255})
		}
		for _, pt := range pv.points {
			rl.DrawCircleV(rl.Vector2{X: ox + pt.X*scale, Y: oy + pt.Y*scale}, 1.5, rl.Color{R: 120, G: 220, B: 255, A: 255})
		}
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Mask: %dx%d  Targets: %d  Scale: %.2f", pv.maskW, pv.maskH, len(pv.points), scale), 15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Message %d/%d: %q", msgIdx+1, len(messages), pv.text), 15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Text Target Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		slider := func(label, format string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			panelY += 35
			return v
		}

		if h := int(slider("Height (glyph pixels)", "%.0f", float32(text.Height), 20, 400)); h != text.Height {
			text.Height = h
			needsRegen = true
		}
		if g := int(slider("Sample gap (pixels between targets)", "%.0f", float32(text.SampleGap), 1, 20)); g != text.SampleGap {
			text.SampleGap = g
			needsRegen = true
		}
		if a := int(slider("Alpha threshold (coverage)", "%.0f", float32(text.AlphaThreshold), 1, 255)); a != text.AlphaThreshold {
			text.AlphaThreshold = a
			needsRegen = true
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.DarkGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Prev") {
			msgIdx = (msgIdx + len(messages) - 1) % len(messages)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Next") {
			msgIdx = (msgIdx + 1) % len(messages)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showMask, "Hide Mask", "Show Mask")) {
			showMask = !showMask
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			text = defaults
			needsRegen = true
		}
		panelY += 55

		yaml := textYAML(text)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func textYAML(t config.TextConfig) string {
	return fmt.Sprintf("text:\n  height: %d\n  sample_gap: %d\n  alpha_threshold: %d",
		t.Height, t.SampleGap, t.AlphaThreshold)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

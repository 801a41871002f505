package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 220, A: 255}
	ColorBarLow      = rl.Color{R: 90, G: 100, B: 140, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Row heights returned by the draw functions.
const (
	labelHeight = 18
	barHeight   = 18
	angleHeight = 36
)

// DrawLabel renders a name: value line and returns its height.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+90, y, 14, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal bar scaled to the max option.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := min(max(value/GetMax(options), 0), 1)

	const barWidth, height = int32(90), int32(12)
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 90
	rl.DrawRectangle(barX, y+1, barWidth, height, ColorBarBg)
	rl.DrawRectangle(barX, y+1, int32(float32(barWidth)*ratio), height, lerpColor(ColorBarLow, ColorBarFill, ratio))
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+6, y, 14, ColorTextDim)
	return barHeight
}

// DrawAngle renders a compass needle for radians.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	const size = int32(32)
	cx := x + 90 + size/2
	cy := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircle(cx, cy, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(cx, cy, float32(size/2), ColorTextDim)

	needle := float32(size/2 - 3)
	end := rl.Vector2{
		X: float32(cx) + needle*float32(math.Cos(float64(radians))),
		Y: float32(cy) + needle*float32(math.Sin(float64(radians))),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, end, 2, ColorAngleNeedle)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+90+size+6, y+size/2-7, 14, ColorTextDim)
	return angleHeight
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color, text := ColorBoolOff, "OFF"
	if value {
		color, text = ColorBoolOn, "ON"
	}
	const box = int32(12)
	rl.DrawRectangle(x+90, y+1, box, box, color)
	rl.DrawText(text, x+90+box+6, y, 14, color)
	return labelHeight
}

// DrawField renders a field using its widget type and returns its height.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(f.Value); ok {
			return DrawBar(x, y, f.Name, v, f.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(f.Value); ok {
			return DrawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, f.Value, f.Options)
}

// fieldHeight mirrors the height DrawField will use.
func fieldHeight(f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		return barHeight
	case WidgetAngle:
		return angleHeight
	default:
		return labelHeight
	}
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}

// Package shape turns text into target points for the swarm.
package shape

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/swarm"
)

var face = basicfont.Face7x13

// glyphHeight is the unscaled line height of the face.
const glyphHeight = 13

// TextWidth returns the unscaled pixel width of text in the built-in face.
func TextWidth(text string) int {
	return font.MeasureString(face, text).Ceil()
}

// RenderText draws text into an alpha mask height pixels tall.
// Empty text yields an empty mask.
func RenderText(text string, height int) *image.Alpha {
	w := TextWidth(text)
	if w == 0 || height <= 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}

	src := image.NewAlpha(image.Rect(0, 0, w, glyphHeight))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(color.Opaque),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(0), Y: fixed.I(face.Ascent)},
	}
	d.DrawString(text)

	if height == glyphHeight {
		return src
	}

	scaledW := int(math.Round(float64(w) * float64(height) / glyphHeight))
	if scaledW < 1 {
		scaledW = 1
	}
	dst := image.NewAlpha(image.Rect(0, 0, scaledW, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Sample returns the coordinates of every gap-th pixel whose alpha is at
// least threshold, scanned row-major.
func Sample(mask image.Image, gap int, threshold uint8) []swarm.Point {
	if gap < 1 {
		gap = 1
	}
	b := mask.Bounds()
	var pts []swarm.Point
	for y := b.Min.Y; y < b.Max.Y; y += gap {
		for x := b.Min.X; x < b.Max.X; x += gap {
			if alphaAt(mask, x, y) >= threshold {
				pts = append(pts, swarm.Point{X: float32(x), Y: float32(y)})
			}
		}
	}
	return pts
}

func alphaAt(mask image.Image, x, y int) uint8 {
	if a, ok := mask.(*image.Alpha); ok {
		return a.AlphaAt(x, y).A
	}
	return color.AlphaModel.Convert(mask.At(x, y)).(color.Alpha).A
}

// Center translates points so their bounding box sits in the middle of a
// width x height viewport. The input is not modified.
func Center(points []swarm.Point, width, height float32) []swarm.Point {
	if len(points) == 0 {
		return nil
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	dx := (width-(maxX-minX))/2 - minX
	dy := (height-(maxY-minY))/2 - minY
	out := make([]swarm.Point, len(points))
	for i, p := range points {
		out[i] = swarm.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// TextTargets renders, samples and centers text for a viewport. The glyph
// height shrinks so the message fits within 90% of the viewport width.
func TextTargets(text string, cfg config.TextConfig, width, height float32) []swarm.Point {
	w := TextWidth(text)
	if w == 0 {
		return nil
	}

	h := cfg.Height
	if fit := int(0.9 * width * glyphHeight / float32(w)); fit < h {
		h = fit
	}
	if limit := int(0.9 * height); limit < h {
		h = limit
	}
	if h < glyphHeight/2 {
		h = glyphHeight / 2
	}

	mask := RenderText(text, h)
	return Center(Sample(mask, cfg.SampleGap, uint8(cfg.AlphaThreshold)), width, height)
}

// Flatten packs points as x0,y0,x1,y1,...
func Flatten(points []swarm.Point) []float32 {
	out := make([]float32, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}

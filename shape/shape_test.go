package shape

import (
	"image"
	"image/color"
	"testing"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/swarm"
)

func TestRenderTextEmpty(t *testing.T) {
	mask := RenderText("", 100)
	if !mask.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", mask.Bounds())
	}
	if pts := Sample(mask, 4, 128); len(pts) != 0 {
		t.Errorf("Sample(empty) = %d points, want 0", len(pts))
	}
}

func TestRenderTextScales(t *testing.T) {
	tests := []struct {
		text   string
		height int
		wantW  int
	}{
		{"A", 13, 7},
		{"AB", 26, 28},
		{"HELLO", 130, 350},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			mask := RenderText(tt.text, tt.height)
			b := mask.Bounds()
			if b.Dy() != tt.height {
				t.Errorf("height = %d, want %d", b.Dy(), tt.height)
			}
			if b.Dx() != tt.wantW {
				t.Errorf("width = %d, want %d", b.Dx(), tt.wantW)
			}
			if len(Sample(mask, 1, 128)) == 0 {
				t.Error("rendered glyphs produced no opaque pixels")
			}
		})
	}
}

func TestSampleGapAndThreshold(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			mask.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	mask.SetAlpha(0, 0, color.Alpha{A: 50})

	pts := Sample(mask, 5, 128)
	want := []swarm.Point{{X: 5, Y: 0}, {X: 0, Y: 5}, {X: 5, Y: 5}}
	if len(pts) != len(want) {
		t.Fatalf("got %d points %v, want %v", len(pts), pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}

	if got := len(Sample(mask, 0, 0)); got != 100 {
		t.Errorf("gap 0 treated as 1: got %d points, want 100", got)
	}
}

func TestSampleGenericImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{A: 255})
	pts := Sample(img, 1, 200)
	if len(pts) != 1 || pts[0] != (swarm.Point{X: 2, Y: 2}) {
		t.Errorf("Sample(RGBA) = %v, want [{2 2}]", pts)
	}
}

func TestCenter(t *testing.T) {
	pts := []swarm.Point{{X: 0, Y: 0}, {X: 10, Y: 20}}
	got := Center(pts, 100, 100)
	want := []swarm.Point{{X: 45, Y: 40}, {X: 55, Y: 60}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if pts[0] != (swarm.Point{}) {
		t.Error("Center modified its input")
	}
	if Center(nil, 100, 100) != nil {
		t.Error("Center(nil) should be nil")
	}
}

func TestTextTargetsFitViewport(t *testing.T) {
	cfg := config.TextConfig{Height: 400, SampleGap: 4, AlphaThreshold: 128}
	const w, h = 320, 240

	pts := TextTargets("SWARM", cfg, w, h)
	if len(pts) == 0 {
		t.Fatal("no targets")
	}
	var minX, maxX float32 = w, 0
	for _, p := range pts {
		if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
			t.Fatalf("target %v outside %dx%d viewport", p, w, h)
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}
	mid := (minX + maxX) / 2
	if mid < w/2-1 || mid > w/2+1 {
		t.Errorf("horizontal center = %v, want ~%v", mid, w/2)
	}

	if TextTargets("", cfg, w, h) != nil {
		t.Error("empty text should produce no targets")
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]swarm.Point{{X: 1, Y: 2}, {X: 3, Y: 4}})
	want := []float32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	tests := []struct {
		name                   string
		vw, vh, ww, wh, wantZ float32
	}{
		{"same size", 1280, 720, 1280, 720, 1},
		{"terminal canvas", 160, 96, 1280, 720, 0.125},
		{"wide world", 800, 800, 1600, 400, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh)
			if !near(cam.Zoom, tt.wantZ) {
				t.Errorf("zoom = %v, want %v", cam.Zoom, tt.wantZ)
			}
			if cam.X != tt.ww/2 || cam.Y != tt.wh/2 {
				t.Errorf("center = (%v,%v), want world center", cam.X, cam.Y)
			}
			if !near(cam.MaxZoom, tt.wantZ*maxZoomFactor) {
				t.Errorf("max zoom = %v, want %v", cam.MaxZoom, tt.wantZ*maxZoomFactor)
			}
		})
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := cam.WorldToScreen(640, 360)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("fitted origin = (%f, %f), want (0, 0)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomBy(2)
	cam.Pan(100, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.ZoomBy(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want min %v", cam.Zoom, cam.MinZoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want max %v", cam.Zoom, cam.MaxZoom)
	}
}

func TestPanStaysInWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// Fitted view cannot pan at all.
	cam.Pan(500, 500)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("fitted pan moved camera to (%v,%v)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(10000, -10000)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(minY, 0) {
		t.Errorf("visible = (%v,%v)-(%v,%v), want clamped to right/top edge", minX, minY, maxX, maxY)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2) // shows 640x360 around the center

	tests := []struct {
		x, y, r float32
		want    bool
	}{
		{640, 360, 1, true},
		{10, 10, 1, false},
		{315, 360, 10, true}, // edge at 320 plus radius
		{1270, 700, 5, false},
	}
	for _, tt := range tests {
		if got := cam.IsVisible(tt.x, tt.y, tt.r); got != tt.want {
			t.Errorf("IsVisible(%v,%v,%v) = %v, want %v", tt.x, tt.y, tt.r, got, tt.want)
		}
	}
}

func TestResizeKeepsRelativeZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	cam.Resize(640, 360, 640, 360)
	if !near(cam.Zoom, 2) {
		t.Errorf("zoom = %v after resize, want 2", cam.Zoom)
	}
	if cam.X != 320 || cam.Y != 180 {
		t.Errorf("center = (%v,%v), want (320,180)", cam.X, cam.Y)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(3)
	cam.Pan(200, 100)
	cam.Reset()

	if cam.X != 640 || cam.Y != 360 || cam.Zoom != cam.MinZoom {
		t.Errorf("after reset: (%v,%v) zoom %v", cam.X, cam.Y, cam.Zoom)
	}
}

func TestScale(t *testing.T) {
	cam := New(160, 90, 1280, 720)
	if got := cam.Scale(150); !near(got, 18.75) {
		t.Errorf("Scale(150) = %v, want 18.75", got)
	}
}

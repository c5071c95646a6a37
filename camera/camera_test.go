package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 0.01 }

func TestCameraCenterMapsToScreenCenter(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	sx, sy := cam.WorldToScreen(1280, 720)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("center maps to (%v, %v), want (640, 360)", sx, sy)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.ZoomBy(2)

	for _, p := range []struct{ sx, sy float32 }{{640, 360}, {10, 10}, {1270, 700}} {
		wx, wy := cam.ScreenToWorld(p.sx, p.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, p.sx) || !near(sy, p.sy) {
			t.Errorf("(%v,%v) -> (%v,%v) -> (%v,%v)", p.sx, p.sy, wx, wy, sx, sy)
		}
	}
}

func TestCameraWrapsAcrossEdge(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 100

	sx, _ := cam.WorldToScreen(2500, 720)
	if sx >= 640 {
		t.Errorf("a point just across the left edge should draw left of center, got x=%v", sx)
	}
	if !cam.Visible(2500, 720, 5) {
		t.Error("point across the edge should be visible")
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomBy(0.1)
	if cam.Zoom != cam.MinZoom || cam.Zoom != 1 {
		t.Errorf("zoom = %v, want clamped to min 1", cam.Zoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamped to max %v", cam.Zoom, cam.MaxZoom)
	}
}

func TestCameraPanWraps(t *testing.T) {
	cam := New(100, 100, 1000, 1000)
	cam.X, cam.Y = 990, 5
	cam.Pan(20, -10)
	if !near(cam.X, 10) || !near(cam.Y, 995) {
		t.Errorf("camera at (%v, %v), want (10, 995)", cam.X, cam.Y)
	}
}

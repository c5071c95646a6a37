// Package camera maps a toroidal world onto the screen with pan and zoom.
package camera

import "math"

// Camera maps a toroidal world onto the screen with pan and zoom.
type Camera struct {
	X, Y                 float32 // view center in world coordinates
	Zoom                 float32
	ViewportW, ViewportH float32
	WorldW, WorldH       float32
	MinZoom, MaxZoom     float32
}

// New centers a 1:1 camera on the world.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   6,
	}
	c.updateMinZoom()
	return c
}

// updateMinZoom keeps the visible area no larger than the world.
func (c *Camera) updateMinZoom() {
	c.MinZoom = max(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.Zoom = max(c.Zoom, c.MinZoom)
}

// WorldToScreen projects a world point along the shortest wrapped path
// from the view center.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := wrapDelta(wx-c.X, c.WorldW)
	dy := wrapDelta(wy-c.Y, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts a screen point to wrapped world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = wrap(c.X+(sx-c.ViewportW/2)/c.Zoom, c.WorldW)
	wy = wrap(c.Y+(sy-c.ViewportH/2)/c.Zoom, c.WorldH)
	return wx, wy
}

// Visible reports whether a circle could intersect the viewport.
func (c *Camera) Visible(wx, wy, radius float32) bool {
	dx := wrapDelta(wx-c.X, c.WorldW)
	dy := wrapDelta(wy-c.Y, c.WorldH)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs32(dx) <= halfW && abs32(dy) <= halfH
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X = wrap(c.X+dx/c.Zoom, c.WorldW)
	c.Y = wrap(c.Y+dy/c.Zoom, c.WorldH)
}

// ZoomBy scales the zoom, clamped to the allowed range.
func (c *Camera) ZoomBy(factor float32) {
	c.Zoom = min(max(c.Zoom*factor, c.MinZoom), c.MaxZoom)
}

// Resize adapts to a new viewport.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.updateMinZoom()
}

// Reset recenters the view at 1:1 zoom.
func (c *Camera) Reset() {
	c.X, c.Y = c.WorldW/2, c.WorldH/2
	c.Zoom = max(1, c.MinZoom)
}

// wrapDelta folds a difference into [-size/2, size/2].
func wrapDelta(d, size float32) float32 {
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

func wrap(x, size float32) float32 {
	r := float32(math.Mod(float64(x), float64(size)))
	if r < 0 {
		r += size
	}
	return r
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

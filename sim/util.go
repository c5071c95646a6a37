package sim

import "math"

const (
	minRadius   = 2
	radiusScale = 3
)

// radiusFor maps a cell size to a body radius.
func radiusFor(size float32) float32 {
	if size <= 0 || math.IsNaN(float64(size)) {
		return minRadius
	}
	return max(radiusScale*float32(math.Sqrt(float64(size))), minRadius)
}

// mod returns positive modulo (Go's % can return negative).
func mod(a, b float32) float32 {
	r := float32(math.Mod(float64(a), float64(b)))
	if r < 0 {
		r += b
	}
	if r >= b {
		r = 0
	}
	return r
}

// toroidalDelta is the shortest signed distance from 'from' to 'to' on a
// wrapped axis of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

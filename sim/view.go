package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cellsoup/cell"
	"github.com/pthm-cable/cellsoup/components"
)

// CellView is a read-only copy of what a viewer needs to draw one cell.
type CellView struct {
	ID          uint32
	X, Y        float32
	Radius      float32
	EnergyRatio float32
	SugarRatio  float32
	Speed2      float32
	Generation  int
	Units       int
}

// Views appends a view of every cell to dst and returns it.
func (w *World) Views(dst []CellView) []CellView {
	dst = dst[:0]
	query := w.filter.Query()
	for query.Next() {
		pos, body, org := query.Get()
		s := org.Cell.Chem()
		dst = append(dst, CellView{
			ID:          org.ID,
			X:           pos.X,
			Y:           pos.Y,
			Radius:      body.Radius,
			EnergyRatio: s.EnergyRatio(),
			SugarRatio:  s.SugarRatio(),
			Speed2:      org.Cell.Velocity.LengthSq(),
			Generation:  org.Cell.Generation,
			Units:       org.Cell.UnitCount(),
		})
	}
	return dst
}

// Nearest returns the ID of the cell closest to (x, y) within maxDist of
// its edge, measuring across the wrapped edges.
func (w *World) Nearest(x, y, maxDist float32) (uint32, bool) {
	w.refreshGrid()

	var best uint32
	var bestD2 float32
	found := false
	w.grid.visit(x, y, maxDist+w.maxRadius, func(e ecs.Entity) {
		pos := w.posMap.Get(e)
		body := w.bodyMap.Get(e)
		dx := toroidalDelta(pos.X, x, w.width)
		dy := toroidalDelta(pos.Y, y, w.height)
		reach := maxDist + body.Radius
		d2 := dx*dx + dy*dy
		if d2 <= reach*reach && (!found || d2 < bestD2) {
			best, bestD2, found = w.orgMap.Get(e).ID, d2, true
		}
	})
	return best, found
}

// Detail is a snapshot of one cell's components for inspection.
type Detail struct {
	Position components.Position
	Body     components.Body
	Organism components.Organism
	Cell     *cell.Cell
}

// Lookup returns the components of the cell with the given ID.
func (w *World) Lookup(id uint32) (Detail, bool) {
	e, ok := w.byID[id]
	if !ok || !w.world.Alive(e) {
		return Detail{}, false
	}
	org := w.orgMap.Get(e)
	return Detail{
		Position: *w.posMap.Get(e),
		Body:     *w.bodyMap.Get(e),
		Organism: *org,
		Cell:     org.Cell,
	}, true
}

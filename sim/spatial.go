package sim

import "github.com/mlange-42/ark/ecs"

const gridCellSize = 32

// spatialGrid buckets entities by position for radius queries on the torus.
type spatialGrid struct {
	cellSize      float32
	cols, rows    int
	width, height float32
	cells         [][]ecs.Entity
	stale         bool
}

func newSpatialGrid(width, height, cellSize float32) *spatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}
	return &spatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
		stale:    true,
	}
}

func (g *spatialGrid) clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *spatialGrid) insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// visit calls fn for every entity in grid cells within radius of (x, y).
// Candidates still need an exact distance check.
func (g *spatialGrid) visit(x, y, radius float32, fn func(ecs.Entity)) {
	span := int(radius/g.cellSize) + 2 // the last column is partial
	c0, c1 := axisRange(int(x/g.cellSize), span, g.cols)
	r0, r1 := axisRange(int(y/g.cellSize), span, g.rows)

	for dc := c0; dc <= c1; dc++ {
		col := ((dc % g.cols) + g.cols) % g.cols
		for dr := r0; dr <= r1; dr++ {
			row := ((dr % g.rows) + g.rows) % g.rows
			for _, e := range g.cells[row*g.cols+col] {
				fn(e)
			}
		}
	}
}

// axisRange returns the unwrapped index range around center, covering the
// axis once when the span would wrap onto itself.
func axisRange(center, span, n int) (lo, hi int) {
	if 2*span+1 >= n {
		return 0, n - 1
	}
	return center - span, center + span
}

func (g *spatialGrid) cellIndex(x, y float32) int {
	col := min(max(int(x/g.cellSize), 0), g.cols-1)
	row := min(max(int(y/g.cellSize), 0), g.rows-1)
	return row*g.cols + col
}

// refreshGrid rebuilds the grid from current positions when cells have
// moved, spawned or died since the last build.
func (w *World) refreshGrid() {
	if !w.grid.stale {
		return
	}
	w.grid.clear()
	query := w.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		w.grid.insert(query.Entity(), pos.X, pos.Y)
	}
	w.grid.stale = false
}

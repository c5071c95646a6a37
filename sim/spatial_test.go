package sim

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cellsoup/cell"
)

func TestAxisRange(t *testing.T) {
	tests := []struct {
		center, span, n int
		lo, hi          int
	}{
		{center: 5, span: 2, n: 20, lo: 3, hi: 7},
		{center: 0, span: 2, n: 20, lo: -2, hi: 2},
		{center: 3, span: 5, n: 8, lo: 0, hi: 7},
		{center: 0, span: 1, n: 2, lo: 0, hi: 1},
	}
	for _, tt := range tests {
		lo, hi := axisRange(tt.center, tt.span, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("axisRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.center, tt.span, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestGridVisitsEachCellOnce(t *testing.T) {
	var e ecs.Entity
	g := newSpatialGrid(64, 64, 32)
	g.insert(e, 10, 10)

	count := 0
	g.visit(50, 50, 500, func(ecs.Entity) { count++ })
	if count != 1 {
		t.Errorf("visited %d times, want 1", count)
	}
}

func TestNearestTracksMovementAndDeath(t *testing.T) {
	cfg := testConfig(t)
	w := newTestWorld(t, cfg, Options{Seed: 11})
	w.spawn(bareCell(t, w), 100, 100, 0)

	if id, ok := w.Nearest(100, 100, 5); !ok || id != 1 {
		t.Fatalf("Nearest = %d, %v; want 1, true", id, ok)
	}

	d, _ := w.Lookup(1)
	d.Cell.Velocity.X = 600
	w.integrate(cfg.Derived.DT32)

	if _, ok := w.Nearest(100, 100, 2); ok {
		t.Error("found cell at its old position after moving")
	}
	moved, _ := w.Lookup(1)
	if id, ok := w.Nearest(moved.Position.X, moved.Position.Y, 2); !ok || id != 1 {
		t.Errorf("Nearest at new position = %d, %v", id, ok)
	}

	cfg.Population.RespawnThreshold = 0
	moved.Cell.Chem().Energy = 0
	moved.Cell.Update(cfg.Derived.DT32)
	if moved.Cell.Phase() != cell.Dying {
		t.Fatalf("phase = %v, want Dying", moved.Cell.Phase())
	}
	w.cleanupDead()

	if _, ok := w.Nearest(moved.Position.X, moved.Position.Y, 50); ok {
		t.Error("found removed cell")
	}
	if _, ok := w.Lookup(1); ok {
		t.Error("Lookup succeeded for removed cell")
	}
}

// Package components defines the ECS components of a cell population.
package components

import "github.com/pthm-cable/cellsoup/cell"

// Organism ties an entity to its simulated cell and lineage.
type Organism struct {
	ID        uint32     `inspect:"label"`
	ParentID  uint32     `inspect:"label"` // 0 for seeded cells
	BirthTick int32      `inspect:"label"`
	Cell      *cell.Cell `inspect:"skip"`
}

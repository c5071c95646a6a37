package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cellsoup/cell"
	"github.com/pthm-cable/cellsoup/components"
	"github.com/pthm-cable/cellsoup/genome"
	"github.com/pthm-cable/cellsoup/telemetry"
)

// SeedPopulation adds up to n random-genome cells at random positions,
// stopping at the population cap. Cells that fail to build are logged and
// skipped. Returns the number of cells added.
func (w *World) SeedPopulation(n int) int {
	added := 0
	for i := 0; i < n && w.alive < w.cfg.Population.Max; i++ {
		if w.seedCell() {
			added++
		}
	}
	return added
}

// seedCell builds one first-generation cell from a random genome.
func (w *World) seedCell() bool {
	g := genome.Random(w.rng, w.cfg.Genome)
	c, err := cell.Seed(g, w.env, w.childRNG())
	if err != nil {
		slog.Warn("seed_failed", "tick", w.tick, "genome_len", g.Len(), "error", err)
		return false
	}
	if c.Degenerate() {
		slog.Debug("degenerate_decode", "tick", w.tick, "genome_len", g.Len())
		w.collector.RecordDegenerate()
	}
	w.spawn(c, w.rng.Float32()*w.width, w.rng.Float32()*w.height, 0)
	return true
}

// childRNG derives an independent generator for a new cell.
func (w *World) childRNG() *rand.Rand {
	return rand.New(rand.NewSource(w.rng.Int63()))
}

// spawn places a built cell in the world.
func (w *World) spawn(c *cell.Cell, x, y float32, parentID uint32) ecs.Entity {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: mod(x, w.width), Y: mod(y, w.height)}
	body := components.Body{Radius: radiusFor(c.Size())}
	org := components.Organism{ID: id, ParentID: parentID, BirthTick: w.tick, Cell: c}

	entity := w.mapper.NewEntity(&pos, &body, &org)
	w.alive++
	w.byID[id] = entity
	w.grid.stale = true
	w.maxRadius = max(w.maxRadius, body.Radius)

	w.lifetimes.Register(telemetry.LifetimeStats{
		ID:         id,
		ParentID:   parentID,
		Generation: c.Generation,
		BirthTick:  w.tick,
		Units:      c.UnitCount(),
		GenomeLen:  c.Genome().Len(),
		Degenerate: c.Degenerate(),
	})
	return entity
}

// birth is a child waiting to be placed after the query completes.
type birth struct {
	parentID uint32
	x, y     float32
	child    *cell.Cell
}

// placeChildren drains every cell's spawn queue and places the children
// around their parents, dropping those that would exceed the population cap.
func (w *World) placeChildren() {
	var births []birth
	offset := float32(w.cfg.Physics.SpawnOffset)

	query := w.filter.Query()
	for query.Next() {
		pos, _, org := query.Get()
		for _, child := range org.Cell.DrainSpawned() {
			angle := w.rng.Float64() * 2 * math.Pi
			births = append(births, birth{
				parentID: org.ID,
				x:        pos.X + offset*float32(math.Cos(angle)),
				y:        pos.Y + offset*float32(math.Sin(angle)),
				child:    child,
			})
		}
	}

	for _, b := range births {
		w.collector.RecordDivision()
		w.lifetimes.RecordChild(b.parentID)
		if b.child.Degenerate() {
			slog.Debug("degenerate_decode", "tick", w.tick, "parent", b.parentID)
			w.collector.RecordDegenerate()
		}
		if w.alive >= w.cfg.Population.Max {
			w.collector.RecordCapped()
			continue
		}
		w.spawn(b.child, b.x, b.y, b.parentID)
		w.collector.RecordBirth()
	}
}

// cleanupDead removes Dying cells and respawns random cells if the
// population has collapsed.
func (w *World) cleanupDead() {
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
	}
	var toRemove []deadInfo

	query := w.filter.Query()
	for query.Next() {
		_, _, org := query.Get()
		if org.Cell.Phase() == cell.Dying {
			toRemove = append(toRemove, deadInfo{entity: query.Entity(), id: org.ID})
		}
	}

	var finished []telemetry.LifetimeStats
	for _, dead := range toRemove {
		w.collector.RecordDeath()
		if s := w.lifetimes.Remove(dead.id, w.tick, w.cfg.Derived.DT32); s != nil {
			finished = append(finished, *s)
		}
		w.world.RemoveEntity(dead.entity)
		delete(w.byID, dead.id)
		w.alive--
		w.grid.stale = true
	}
	if err := w.output.WriteLifetimes(finished); err != nil {
		slog.Error("failed to write lifetimes", "error", err)
	}

	pop := w.cfg.Population
	if w.alive >= pop.RespawnThreshold {
		return
	}
	before := w.alive
	respawned := 0
	for i := 0; i < pop.RespawnCount && w.alive < pop.Max; i++ {
		if w.seedCell() {
			w.collector.RecordRespawn()
			respawned++
		}
	}
	if respawned > 0 {
		slog.Info("respawn",
			"tick", w.tick,
			"population_before", before,
			"respawned", respawned,
		)
	}
}

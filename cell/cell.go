// Package cell implements a simulated cell: chemical pools, the behavior units
// decoded from its genome, and the Active to Dying lifecycle.
package cell

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/cellsoup/behavior"
	"github.com/pthm-cable/cellsoup/chem"
	"github.com/pthm-cable/cellsoup/config"
	"github.com/pthm-cable/cellsoup/genome"
	"github.com/pthm-cable/cellsoup/rna"
)

var (
	ErrNoGenome  = errors.New("cell: genome is required")
	ErrNoCatalog = errors.New("cell: environment has no behavior catalog")
)

// Phase is a cell's lifecycle state. Dying is terminal.
type Phase uint8

const (
	Active Phase = iota
	Dying
)

func (p Phase) String() string {
	if p == Dying {
		return "dying"
	}
	return "active"
}

// Vec2 is a 2D velocity.
type Vec2 struct {
	X, Y float32
}

// LengthSq returns the squared magnitude.
func (v Vec2) LengthSq() float32 { return v.X*v.X + v.Y*v.Y }

// Env holds the read-only parameters shared by every cell of a world.
type Env struct {
	Cell         config.CellConfig
	Reproduction config.ReproductionConfig
	Mutation     config.MutationConfig
	Catalog      *behavior.Catalog
}

// NewEnv builds an Env and its catalog from a loaded config.
func NewEnv(cfg *config.Config) *Env {
	return &Env{
		Cell:         cfg.Cell,
		Reproduction: cfg.Reproduction,
		Mutation:     cfg.Mutation,
		Catalog:      behavior.NewCatalogFromConfig(cfg),
	}
}

// Cell is one simulated cell. It is not safe for concurrent use, but distinct
// cells share no mutable state and may be updated in parallel.
type Cell struct {
	chem     chem.State
	internal []behavior.Unit
	boundary []behavior.Unit
	Velocity Vec2

	genome  *genome.WeightList
	spawned []*Cell
	phase   Phase

	env *Env
	rng *rand.Rand

	Generation int
	degenerate bool
	divisions  int
}

// New creates a cell with fresh pools from env and no behavior units.
func New(env *Env, g *genome.WeightList, rng *rand.Rand) *Cell {
	cc := env.Cell
	signals := make([]chem.Signal, max(cc.SignalCount, 0))
	for i := range signals {
		signals[i].Amount = float32(cc.SignalInitial)
	}
	return &Cell{
		chem: chem.State{
			Energy:          float32(cc.InitialEnergy),
			EnergyStorage:   float32(cc.EnergyStorage),
			Sugar:           float32(cc.InitialSugar),
			SugarStorage:    float32(cc.SugarStorage),
			SugarDifficulty: float32(cc.SugarDifficulty),
			Signals:         signals,
		},
		genome: g,
		env:    env,
		rng:    rng,
	}
}

// DecodeAndBuild decodes g against a parent's size and signal state and builds
// a new cell with one unit per expressed catalog slot. The child starts with
// a copy of the parent's signals.
func DecodeAndBuild(g *genome.WeightList, parentSize float32, parentSignals []chem.Signal, env *Env, rng *rand.Rand) (*Cell, error) {
	if g == nil {
		return nil, ErrNoGenome
	}
	if env == nil || env.Catalog == nil {
		return nil, ErrNoCatalog
	}

	res := rna.Decode(g, parentSize, parentSignals, env.Catalog.Len())
	c := New(env, g, rng)
	if len(parentSignals) > 0 {
		c.chem.Signals = append([]chem.Signal(nil), parentSignals...)
	}
	c.degenerate = res.Degenerate

	for slot, b := range res.Bundles {
		if b == nil {
			continue
		}
		u, err := env.Catalog.Build(slot, *b)
		if err != nil {
			return nil, fmt.Errorf("build slot %d: %w", slot, err)
		}
		c.Inject(u)
	}
	return c, nil
}

// Seed builds a first-generation cell, decoding g against the size and signals
// of a freshly created cell.
func Seed(g *genome.WeightList, env *Env, rng *rand.Rand) (*Cell, error) {
	if env == nil {
		return nil, ErrNoCatalog
	}
	blank := New(env, g, rng)
	return DecodeAndBuild(g, blank.Size(), blank.chem.Signals, env, rng)
}

// Inject adds a unit to the list matching its role.
func (c *Cell) Inject(u behavior.Unit) {
	if u.Role() == behavior.RoleBoundary {
		c.boundary = append(c.boundary, u)
		return
	}
	c.internal = append(c.internal, u)
}

// Chem returns the live chemical state.
func (c *Cell) Chem() *chem.State { return &c.chem }

// Size returns chemical bulk plus the declared size of every unit.
// Negative unit sizes count as zero.
func (c *Cell) Size() float32 {
	size := c.chem.Size()
	for _, u := range c.internal {
		size += max(u.DeclaredSize(), 0)
	}
	for _, u := range c.boundary {
		size += max(u.DeclaredSize(), 0)
	}
	return size
}

// EnergyUse returns the metabolic cost per second at the current state.
func (c *Cell) EnergyUse() float32 {
	size := c.Size()
	use := size*size + c.Velocity.LengthSq()
	if c.chem.Sugar > 0 {
		cc := c.env.Cell
		use += float32(cc.DigestionRate * cc.DigestionEasiness * cc.DigestionEfficiency)
	}
	return use
}

// Push adds a velocity delta.
func (c *Cell) Push(dx, dy float32) {
	c.Velocity.X += dx
	c.Velocity.Y += dy
}

// Divide mutates the genome, decodes a child against this cell's current size
// and signals, and queues it. Division stops once the queue holds
// MaxQueuedPerCell children.
func (c *Cell) Divide() {
	if limit := c.env.Reproduction.MaxQueuedPerCell; limit > 0 && len(c.spawned) >= limit {
		return
	}
	g, _ := genome.Mutate(c.rng, c.genome, c.env.Mutation)
	childRng := rand.New(rand.NewSource(c.rng.Int63()))
	child, err := DecodeAndBuild(g, c.Size(), c.chem.Signals, c.env, childRng)
	if err != nil {
		slog.Warn("divide_failed", "generation", c.Generation, "error", err)
		return
	}
	child.chem.Energy = float32(c.env.Reproduction.ChildEnergy)
	child.Generation = c.Generation + 1
	c.spawned = append(c.spawned, child)
	c.divisions++
}

// Update advances the cell by dt seconds: passive sugar inflow, metabolic
// drain, internal units, boundary units, then the death check.
func (c *Cell) Update(dt float32) {
	if c.phase == Dying {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s := &c.chem
	s.Sugar += s.SugarStorage * float32(c.env.Cell.InflowRate) * dt
	chem.Take(&s.Energy, c.EnergyUse()*dt)

	c.run(&c.internal, dt)
	c.run(&c.boundary, dt)

	if s.Energy <= float32(c.env.Cell.DeathThreshold) {
		c.phase = Dying
	}
}

// run ticks every unit present at the start of the pass, then applies
// replacements in place and injects spawned units by role.
func (c *Cell) run(list *[]behavior.Unit, dt float32) {
	type swap struct {
		at   int
		unit behavior.Unit
	}
	var swaps []swap
	var spawned []behavior.Unit

	units := *list
	for i, u := range units {
		r := u.Tick(c, dt, c.rng)
		if r.Replace != nil {
			swaps = append(swaps, swap{at: i, unit: r.Replace})
		}
		spawned = append(spawned, r.Spawned...)
	}

	for _, s := range swaps {
		units[s.at] = s.unit
	}
	for _, u := range spawned {
		c.Inject(u)
	}
}

// DrainSpawned returns the queued children and empties the queue.
func (c *Cell) DrainSpawned() []*Cell {
	out := c.spawned
	c.spawned = nil
	return out
}

// Phase returns the lifecycle state.
func (c *Cell) Phase() Phase { return c.phase }

// Alive reports whether the cell is still Active.
func (c *Cell) Alive() bool { return c.phase == Active }

// Genome returns the genome the cell was decoded from.
func (c *Cell) Genome() *genome.WeightList { return c.genome }

// Internal returns the internal units in injection order.
func (c *Cell) Internal() []behavior.Unit { return c.internal }

// Boundary returns the boundary units in injection order.
func (c *Cell) Boundary() []behavior.Unit { return c.boundary }

// UnitCount returns the total number of units.
func (c *Cell) UnitCount() int { return len(c.internal) + len(c.boundary) }

// Degenerate reports whether decoding needed placeholder windows.
func (c *Cell) Degenerate() bool { return c.degenerate }

// Divisions returns how many children this cell has produced.
func (c *Cell) Divisions() int { return c.divisions }

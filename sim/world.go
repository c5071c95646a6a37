// Package sim drives a population of cells in a toroidal 2D world: parallel
// cell updates, movement, placement of children, removal of dead cells and
// windowed telemetry.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cellsoup/cell"
	"github.com/pthm-cable/cellsoup/components"
	"github.com/pthm-cable/cellsoup/config"
	"github.com/pthm-cable/cellsoup/telemetry"
)

// Options configures a World beyond the loaded config.
type Options struct {
	Seed      int64
	OutputDir string // empty disables CSV output
	LogStats  bool   // log window and perf stats via slog

	// StatsCallback, if set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// World holds the simulation state.
type World struct {
	cfg *config.Config
	env *cell.Env
	rng *rand.Rand

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Body, components.Organism]
	filter *ecs.Filter3[components.Position, components.Body, components.Organism]

	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]
	orgMap  *ecs.Map1[components.Organism]

	grid      *spatialGrid
	byID      map[uint32]ecs.Entity
	maxRadius float32

	parallel *parallelState

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	lifetimes *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	sample    telemetry.PopulationSample
	lastStats telemetry.WindowStats
	logStats  bool
	onStats   func(telemetry.WindowStats)

	width, height float32
	damping       float32 // velocity factor per tick

	tick   int32
	nextID uint32
	alive  int
}

// New creates an empty world. Call SeedPopulation to add cells.
func New(cfg *config.Config, opts Options) (*World, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("sim: %w", err)
	}

	ew := ecs.NewWorld()
	dt := cfg.Derived.DT32
	w := &World{
		cfg:       cfg,
		env:       cell.NewEnv(cfg),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		world:     ew,
		mapper:    ecs.NewMap3[components.Position, components.Body, components.Organism](ew),
		filter:    ecs.NewFilter3[components.Position, components.Body, components.Organism](ew),
		posMap:    ecs.NewMap1[components.Position](ew),
		bodyMap:   ecs.NewMap1[components.Body](ew),
		orgMap:    ecs.NewMap1[components.Organism](ew),
		grid:      newSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, gridCellSize),
		byID:      make(map[uint32]ecs.Entity),
		maxRadius: minRadius,
		parallel:  newParallelState(cfg.Physics.Workers),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, dt),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimes: telemetry.NewLifetimeTracker(),
		bookmarks: telemetry.NewBookmarkDetector(10),
		output:    output,
		logStats:  opts.LogStats,
		onStats:   opts.StatsCallback,
		width:     cfg.Derived.WorldW32,
		height:    cfg.Derived.WorldH32,
		damping:   float32(math.Pow(cfg.Physics.Damping, cfg.Physics.DT)),
		nextID:    1,
	}
	return w, nil
}

// Step advances the world by one tick.
func (w *World) Step() {
	dt := w.cfg.Derived.DT32

	w.perf.StartTick()

	w.perf.StartPhase(telemetry.PhaseCells)
	w.updateCells(dt)

	w.perf.StartPhase(telemetry.PhaseMovement)
	w.integrate(dt)

	w.perf.StartPhase(telemetry.PhaseSpawn)
	w.placeChildren()

	w.perf.StartPhase(telemetry.PhaseCleanup)
	w.cleanupDead()

	w.tick++

	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.flushTelemetry()

	w.perf.EndTick()
}

// integrate moves every cell by its velocity, applies damping, wraps the
// position and refreshes the body radius from the current size.
func (w *World) integrate(dt float32) {
	w.grid.stale = true
	w.maxRadius = minRadius
	query := w.filter.Query()
	for query.Next() {
		pos, body, org := query.Get()
		c := org.Cell

		pos.X = mod(pos.X+c.Velocity.X*dt, w.width)
		pos.Y = mod(pos.Y+c.Velocity.Y*dt, w.height)
		c.Velocity.X *= w.damping
		c.Velocity.Y *= w.damping

		size := c.Size()
		body.Radius = radiusFor(size)
		w.maxRadius = max(w.maxRadius, body.Radius)
		w.lifetimes.Observe(org.ID, c.Chem().Energy, size)
	}
}

// Close stops the worker pool and flushes output files.
func (w *World) Close() error {
	w.parallel.stopWorkers()
	return w.output.Close()
}

// Tick returns the number of completed steps.
func (w *World) Tick() int32 { return w.tick }

// Population returns the number of cells in the world.
func (w *World) Population() int { return w.alive }

// LastStats returns the most recently flushed window.
func (w *World) LastStats() telemetry.WindowStats { return w.lastStats }

// Perf returns the tick performance collector.
func (w *World) Perf() *telemetry.PerfCollector { return w.perf }

// Size returns the world dimensions.
func (w *World) Size() (width, height float32) { return w.width, w.height }

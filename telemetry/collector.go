package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	births     int
	deaths     int
	divisions  int
	capped     int
	respawns   int
	degenerate int
}

// NewCollector creates a collector whose windows last windowDurationSec of
// simulated time at dt seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticks := int32(1)
	if dt > 0 {
		ticks = max(int32(math.Round(windowDurationSec/float64(dt))), 1)
	}
	return &Collector{windowDurationTicks: ticks, dt: dt}
}

// RecordBirth records a child placed in the world.
func (c *Collector) RecordBirth() { c.births++ }

// RecordDeath records a cell removed after dying.
func (c *Collector) RecordDeath() { c.deaths++ }

// RecordDivision records a child produced by a parent, placed or not.
func (c *Collector) RecordDivision() { c.divisions++ }

// RecordCapped records a child dropped because the population was full.
func (c *Collector) RecordCapped() { c.capped++ }

// RecordRespawn records a fresh random cell added to a collapsing population.
func (c *Collector) RecordRespawn() { c.respawns++ }

// RecordDegenerate records a decode that needed placeholder windows.
func (c *Collector) RecordDegenerate() { c.degenerate++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces WindowStats from the window's events and the population
// sample, then resets the counters.
func (c *Collector) Flush(currentTick int32, sample *PopulationSample) WindowStats {
	energy := Summarize(sample.Energies)
	size := Summarize(sample.Sizes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Population: sample.Len(),

		Births:     c.births,
		Deaths:     c.deaths,
		Divisions:  c.divisions,
		Capped:     c.capped,
		Respawns:   c.respawns,
		Degenerate: c.degenerate,

		EnergyMean: energy.Mean,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		SizeMean: size.Mean,
		SizeStd:  size.Std,

		SugarMean:     mean(sample.Sugars),
		UnitsMean:     mean(sample.Units),
		GenomeLenMean: mean(sample.GenomeLens),
		MaxGeneration: sample.MaxGeneration,
		Lineages:      sample.Lineages,
	}

	c.windowStartTick = currentTick
	c.births, c.deaths, c.divisions = 0, 0, 0
	c.capped, c.respawns, c.degenerate = 0, 0, 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

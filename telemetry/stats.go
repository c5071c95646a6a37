// Package telemetry tracks population health: windowed statistics, per-cell
// lifetimes, bookmarks for notable moments, and tick performance.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
	Divisions  int `csv:"divisions"`
	Capped     int `csv:"capped"` // children dropped at the population cap
	Respawns   int `csv:"respawns"`
	Degenerate int `csv:"degenerate_decodes"`

	// Distributions sampled at window end
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`

	SugarMean     float64 `csv:"sugar_mean"`
	UnitsMean     float64 `csv:"units_mean"`
	GenomeLenMean float64 `csv:"genome_len_mean"`
	MaxGeneration int     `csv:"max_generation"`
	Lineages      int     `csv:"lineages"`
}

// Summary describes a sample distribution.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes the mean, standard deviation and empirical quantiles of values.
// An empty sample summarizes to zeros.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// mean returns the arithmetic mean of values, or 0 if empty.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// PopulationSample gathers per-cell values for a window flush.
type PopulationSample struct {
	Energies   []float64
	Sizes      []float64
	Sugars     []float64
	Units      []float64
	GenomeLens []float64

	MaxGeneration int
	Lineages      int
}

// Reset clears the sample, keeping allocated capacity.
func (p *PopulationSample) Reset() {
	p.Energies = p.Energies[:0]
	p.Sizes = p.Sizes[:0]
	p.Sugars = p.Sugars[:0]
	p.Units = p.Units[:0]
	p.GenomeLens = p.GenomeLens[:0]
	p.MaxGeneration = 0
	p.Lineages = 0
}

// Add records one living cell.
func (p *PopulationSample) Add(energy, size, sugar float32, units, genomeLen, generation int) {
	p.Energies = append(p.Energies, float64(energy))
	p.Sizes = append(p.Sizes, sanitize(size))
	p.Sugars = append(p.Sugars, float64(sugar))
	p.Units = append(p.Units, float64(units))
	p.GenomeLens = append(p.GenomeLens, float64(genomeLen))
	p.MaxGeneration = max(p.MaxGeneration, generation)
}

// Len returns the number of recorded cells.
func (p *PopulationSample) Len() int { return len(p.Energies) }

func sanitize(v float32) float64 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("divisions", s.Divisions),
		slog.Int("capped", s.Capped),
		slog.Int("respawns", s.Respawns),
		slog.Int("degenerate_decodes", s.Degenerate),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("units_mean", s.UnitsMean),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("lineages", s.Lineages),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"births", s.Births,
		"deaths", s.Deaths,
		"divisions", s.Divisions,
		"capped", s.Capped,
		"respawns", s.Respawns,
		"degenerate_decodes", s.Degenerate,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"size_mean", s.SizeMean,
		"size_std", s.SizeStd,
		"sugar_mean", s.SugarMean,
		"units_mean", s.UnitsMean,
		"genome_len_mean", s.GenomeLenMean,
		"max_generation", s.MaxGeneration,
		"lineages", s.Lineages,
	)
}

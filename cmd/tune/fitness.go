package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/cellsoup/config"
	"github.com/pthm-cable/cellsoup/sim"
	"github.com/pthm-cable/cellsoup/telemetry"
)

const (
	warmupWindows = 2 // windows skipped before scoring
	minViablePop  = 5
)

// FitnessEvaluator runs headless simulations and scores how well a
// population sustains itself without respawns.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5,
	}
}

// LastQuality returns the quality score of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run concurrently; the result is their mean.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(x, s)
			persistence, quality := score(windows)
			results[idx] = seedResult{
				fitness: -(persistence * (1 + 0.2*quality)),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation runs one seed for maxTicks and returns every window.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.configFor(x)

	var windows []telemetry.WindowStats
	w, err := sim.New(cfg, sim.Options{
		Seed: seed,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		return nil
	}
	defer w.Close()

	w.SeedPopulation(cfg.Population.Initial)
	for w.Tick() < fe.maxTicks {
		w.Step()
	}
	return windows
}

// configFor copies the base config and applies x. Each run gets a single
// worker since seeds already run in parallel.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	cfg.Physics.Workers = 1
	cfg.Telemetry.StatsWindow = fe.statsWindow
	return &cfg
}

// score returns the number of self-sustaining windows (no respawns and a
// viable population) and a quality in [0, 1] that rewards division activity
// and a steady population.
func score(windows []telemetry.WindowStats) (persistence, quality float64) {
	if len(windows) <= warmupWindows {
		return 0, 0
	}
	valid := windows[warmupWindows:]

	var activity float64
	counts := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.Respawns > 0 || w.Population < minViablePop {
			continue
		}
		persistence++
		counts = append(counts, float64(w.Population))
		activity += 1 - math.Exp(-float64(w.Births)/float64(w.Population))
	}
	if persistence == 0 {
		return 0, 0
	}
	activity /= persistence

	stability := 0.0
	if len(counts) >= 2 {
		mean, std := stat.MeanStdDev(counts, nil)
		if mean > 0 {
			cv := std / mean
			stability = math.Exp(-cv * cv)
		}
	}
	return persistence, min(max(0.5*activity+0.5*stability, 0), 1)
}

package genome

import (
	"math/rand"

	"github.com/pthm-cable/cellsoup/config"
)

// Random generates a genome for seeding a population.
// The entry count and value ranges come from cfg.
func Random(rng *rand.Rand, cfg config.GenomeConfig) *WeightList {
	count := cfg.MinEntries
	if span := cfg.MaxEntries - cfg.MinEntries; span > 0 {
		count += rng.Intn(span + 1)
	}
	if count < 1 {
		count = 1
	}

	weights := make([]Weight, count)
	for i := range weights {
		signalIndex := 0
		if cfg.SignalIndexSpan > 0 {
			signalIndex = rng.Intn(cfg.SignalIndexSpan)
		}
		weights[i] = Weight{
			Index: rng.Float32() * float32(cfg.IndexSpan),
			Range: rng.Float32() * float32(cfg.RangeSpan),
			Base:  spread(rng, cfg.BaseSpread),
			Sensitivity: Sensitivity{
				Index:  signalIndex,
				Weight: spread(rng, cfg.SignalSpread),
			},
		}
	}

	wl, _ := New(weights) // count >= 1
	return wl
}

// spread returns a uniform value in [-s, s).
func spread(rng *rand.Rand, s float64) float32 {
	return (rng.Float32()*2 - 1) * float32(s)
}

// Mutate returns a sparsely mutated copy of wl and the average absolute delta
// of the applied mutations.
// Each numeric field mutates with probability cfg.Rate; a mutation is large
// (cfg.BigSigma) with probability cfg.BigRate, otherwise small (cfg.Sigma).
// Deltas are relative to the field's magnitude so wide genomes stay wide.
func Mutate(rng *rand.Rand, wl *WeightList, cfg config.MutationConfig) (*WeightList, float32) {
	rate := float32(cfg.Rate)
	weights := wl.Entries()

	var totalDelta float32
	var count int
	perturb := func(v *float32) {
		if rng.Float32() >= rate {
			return
		}
		sigma := cfg.Sigma
		if rng.Float32() < float32(cfg.BigRate) {
			sigma = cfg.BigSigma
		}
		delta := float32(rng.NormFloat64()*sigma) * max(abs32(*v), 1)
		*v += delta
		totalDelta += abs32(delta)
		count++
	}

	for i := range weights {
		w := &weights[i]
		perturb(&w.Index)
		perturb(&w.Range)
		perturb(&w.Base)
		perturb(&w.Sensitivity.Weight)
		if w.Range < 0 {
			w.Range = 0
		}
		// Signal coupling occasionally shifts to a neighbouring slot
		if rng.Float32() < rate*0.5 {
			if rng.Intn(2) == 0 && w.Sensitivity.Index > 0 {
				w.Sensitivity.Index--
			} else {
				w.Sensitivity.Index++
			}
		}
	}

	out, _ := New(weights)
	if count == 0 {
		return out, 0
	}
	return out, totalDelta / float32(count)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

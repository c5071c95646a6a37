package main

import "github.com/pthm-cable/cellsoup/config"

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	get     func(*config.Config) *float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of parameters: the passive
// environment, reproduction economics and the random genome distribution.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "inflow_rate", Min: 1, Max: 40, Default: 10,
				get: func(c *config.Config) *float64 { return &c.Cell.InflowRate }},
			{Name: "high_water_mark", Min: 2, Max: 30, Default: 15,
				get: func(c *config.Config) *float64 { return &c.Reproduction.HighWaterMark }},
			{Name: "fission_cost", Min: 0.5, Max: 20, Default: 10,
				get: func(c *config.Config) *float64 { return &c.Reproduction.FissionCost }},
			{Name: "child_energy", Min: 0.2, Max: 5, Default: 1,
				get: func(c *config.Config) *float64 { return &c.Reproduction.ChildEnergy }},
			{Name: "sugar_intake", Min: 0, Max: 1, Default: 0.05,
				get: func(c *config.Config) *float64 { return &c.Reproduction.SugarIntake }},
			{Name: "base_spread", Min: 1, Max: 500, Default: 500,
				get: func(c *config.Config) *float64 { return &c.Genome.BaseSpread }},
			{Name: "signal_spread", Min: 1, Max: 500, Default: 500,
				get: func(c *config.Config) *float64 { return &c.Genome.SignalSpread }},
			{Name: "range_span", Min: 1, Max: 100, Default: 100,
				get: func(c *config.Config) *float64 { return &c.Genome.RangeSpan }},
			{Name: "mutation_rate", Min: 0.001, Max: 0.3, Default: 0.05,
				get: func(c *config.Config) *float64 { return &c.Mutation.Rate }},
			{Name: "mutation_sigma", Min: 0.01, Max: 0.5, Default: 0.08,
				get: func(c *config.Config) *float64 { return &c.Mutation.Sigma }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values into [0,1] per parameter.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds every value to its spec.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].get(cfg) = v
	}
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = *spec.get(cfg)
	}
	return out
}

package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	values := []float64{0.7, 0.1, 0.4, 1.0, 0.2, 0.9, 0.3, 0.6, 0.8, 0.5}
	s := Summarize(values)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", s.Mean, 0.55},
		{"std", s.Std, 0.30277},
		{"p10", s.P10, 0.1},
		{"p50", s.P50, 0.5},
		{"p90", s.P90, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.001 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if values[0] != 0.7 {
		t.Error("Summarize must not reorder its input")
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
	s := Summarize([]float64{3})
	if s.Mean != 3 || s.Std != 0 || s.P10 != 3 || s.P90 != 3 {
		t.Errorf("single value summary = %+v", s)
	}
}

func TestPopulationSample(t *testing.T) {
	var p PopulationSample
	p.Add(1, 2, 3, 4, 100, 2)
	p.Add(2, float32(math.NaN()), 1, 2, 200, 7)

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if p.MaxGeneration != 7 {
		t.Errorf("max generation = %d, want 7", p.MaxGeneration)
	}
	if p.Sizes[1] != 0 {
		t.Errorf("NaN size should be recorded as 0, got %v", p.Sizes[1])
	}
	if got := mean(p.GenomeLens); got != 150 {
		t.Errorf("genome length mean = %v, want 150", got)
	}

	p.Reset()
	if p.Len() != 0 || p.MaxGeneration != 0 {
		t.Error("Reset should clear the sample")
	}
}

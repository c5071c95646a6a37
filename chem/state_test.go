package chem

import (
	"math"
	"testing"
)

func TestTake(t *testing.T) {
	tests := []struct {
		name      string
		pool      float32
		want      float32
		taken     float32
		remaining float32
	}{
		{"partial", 5, 2, 2, 3},
		{"clamped to pool", 1, 3, 1, 0},
		{"negative request", 4, -1, 0, 4},
		{"empty pool", 0, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := tt.pool
			got := Take(&pool, tt.want)
			if got != tt.taken {
				t.Errorf("Take = %v, want %v", got, tt.taken)
			}
			if pool != tt.remaining {
				t.Errorf("pool = %v, want %v", pool, tt.remaining)
			}
		})
	}
}

func TestSizeWeightsPools(t *testing.T) {
	s := State{
		Sugar:       2,
		Proteins:    10,
		AminoAcids:  10,
		Nucleotides: 10,
		Polymers:    []Polymer{{Complexity: 2, Amount: 3}},
		Signals:     []Signal{{Amount: 10}},
		Energy:      100, // energy carries no bulk
	}
	// 2*1 + 10*0.1*3 + 3*1 + 10*0.1
	want := float32(2 + 3 + 3 + 1)
	if got := s.Size(); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestSignalStrength(t *testing.T) {
	sig := Signal{Amount: 4}
	if got := sig.Strength(2); got != 2 {
		t.Errorf("Strength(2) = %v, want 2", got)
	}
	if got := sig.Strength(0); got != 0 {
		t.Errorf("Strength(0) = %v, want 0 for an empty cell", got)
	}
}

func TestRatiosClamped(t *testing.T) {
	s := State{Energy: 20, EnergyStorage: 10, Sugar: 1, SugarStorage: 0}
	if got := s.EnergyRatio(); got != 1 {
		t.Errorf("EnergyRatio = %v, want 1", got)
	}
	if got := s.SugarRatio(); got != 0 {
		t.Errorf("SugarRatio with no storage = %v, want 0", got)
	}
}

func TestNonNegative(t *testing.T) {
	s := State{Energy: 1, Polymers: []Polymer{{Amount: 1}}}
	if !s.NonNegative() {
		t.Error("expected valid state")
	}
	s.Polymers[0].Amount = -0.1
	if s.NonNegative() {
		t.Error("negative polymer should be reported")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := State{Polymers: []Polymer{{Amount: 1}}, Signals: []Signal{{Amount: 1}}}
	c := s.Clone()
	c.Polymers[0].Amount = 5
	c.Signals[0].Amount = 5
	if s.Polymers[0].Amount != 1 || s.Signals[0].Amount != 1 {
		t.Error("Clone shares slices with the original")
	}
}

// Package chem holds the chemical pools of a single cell.
package chem

// Bulk per unit of each species, used to derive cell size.
const (
	SugarBulk      = 1.0
	PolymerBulk    = 1.0
	ProteinBulk    = 0.1
	NucleotideBulk = 0.1
	AminoAcidBulk  = 0.1
	SignalBulk     = 0.1
)

// Polymer is a dense storage form of sugar.
// Complexity scales how much sugar one unit yields when broken down.
type Polymer struct {
	Complexity float32
	Amount     float32
}

// Signal is an internal signal molecule. Behaviors read its strength,
// which is diluted by the size of the cell.
type Signal struct {
	Amount float32
}

// Strength returns the signal concentration for a cell of the given size.
// A cell with no volume carries no signal.
func (s Signal) Strength(cellSize float32) float32 {
	if cellSize <= 0 {
		return 0
	}
	return s.Amount / cellSize
}

// State holds every mutable pool of a cell.
// All pools stay >= 0; consumers go through Take to clamp withdrawals.
type State struct {
	Energy          float32 // ATP-equivalent
	EnergyStorage   float32
	Sugar           float32
	SugarStorage    float32
	SugarDifficulty float32
	Polymers        []Polymer // oldest first
	Signals         []Signal
	AminoAcids      float32
	Proteins        float32 // structural proteins
	Nucleotides     float32
}

// Take withdraws up to want from pool and returns the amount actually taken.
// Negative requests take nothing.
func Take(pool *float32, want float32) float32 {
	if want <= 0 || *pool <= 0 {
		return 0
	}
	if want > *pool {
		want = *pool
	}
	*pool -= want
	return want
}

// Size returns the bulk of the chemical contents.
// Behavior unit sizes are added by the owning cell.
func (s *State) Size() float32 {
	var size float32
	for _, p := range s.Polymers {
		size += p.Amount * PolymerBulk
	}
	for _, sig := range s.Signals {
		size += sig.Amount * SignalBulk
	}
	size += s.Sugar * SugarBulk
	size += s.Proteins * ProteinBulk
	size += s.Nucleotides * NucleotideBulk
	size += s.AminoAcids * AminoAcidBulk
	return size
}

// PolymerTotal returns the summed amount of all stored polymers.
func (s *State) PolymerTotal() float32 {
	var total float32
	for _, p := range s.Polymers {
		total += p.Amount
	}
	return total
}

// EnergyRatio returns energy relative to storage capacity, clamped to [0, 1].
func (s *State) EnergyRatio() float32 {
	return ratio(s.Energy, s.EnergyStorage)
}

// SugarRatio returns sugar relative to sugar storage, clamped to [0, 1].
func (s *State) SugarRatio() float32 {
	return ratio(s.Sugar, s.SugarStorage)
}

func ratio(v, capacity float32) float32 {
	if capacity <= 0 {
		return 0
	}
	r := v / capacity
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}

// NonNegative reports whether every pool is >= 0.
func (s *State) NonNegative() bool {
	scalars := [...]float32{
		s.Energy, s.EnergyStorage, s.Sugar, s.SugarStorage, s.SugarDifficulty,
		s.AminoAcids, s.Proteins, s.Nucleotides,
	}
	for _, v := range scalars {
		if v < 0 {
			return false
		}
	}
	for _, p := range s.Polymers {
		if p.Amount < 0 {
			return false
		}
	}
	for _, sig := range s.Signals {
		if sig.Amount < 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the state.
func (s *State) Clone() State {
	out := *s
	out.Polymers = append([]Polymer(nil), s.Polymers...)
	out.Signals = append([]Signal(nil), s.Signals...)
	return out
}

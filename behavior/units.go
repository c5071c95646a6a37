package behavior

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/cellsoup/chem"
	"github.com/pthm-cable/cellsoup/config"
)

// Unit names, in catalog order.
const (
	NameLocomotion       = "locomotion"
	NameGlycolysis       = "glycolysis"
	NamePolymerSynthesis = "polymer_synthesis"
	NameProteinSynthesis = "protein_synthesis"
	NamePolymerBreakdown = "polymer_breakdown"
	NameReproduction     = "reproduction"
)

// Locomotion converts energy into a velocity push along a random direction.
// The energy cost grows with the square of the push and with cell size; when
// the cell cannot afford it the push is scaled down to what it can pay for.
type Locomotion struct {
	reaction
	costFactor float32
}

// NewLocomotion builds a boundary locomotion unit.
func NewLocomotion(b Bundle, cfg config.ChemistryConfig) *Locomotion {
	return &Locomotion{reaction: newReaction(b), costFactor: float32(cfg.LocomotionCostFactor)}
}

func (*Locomotion) Name() string { return NameLocomotion }
func (*Locomotion) Role() Role   { return RoleBoundary }

func (l *Locomotion) Tick(h Host, dt float32, rng *rand.Rand) TickResult {
	amount := l.amount(h, dt)
	if amount <= 0 {
		return TickResult{}
	}
	s := h.Chem()
	size := h.Size()

	cost := amount * amount * size / l.costFactor
	if cost > s.Energy {
		if size > 0 {
			amount = float32(math.Sqrt(float64(s.Energy * l.costFactor / size)))
		}
		cost = s.Energy
	}
	chem.Take(&s.Energy, cost)

	push := amount * l.efficiency
	if rng.Intn(2) == 0 {
		push = -push
	}
	split := rng.Float32()
	h.Push(push*split, push*(1-split))
	return TickResult{}
}

// Glycolysis burns sugar into energy and amino acids.
type Glycolysis struct {
	reaction
	aminoYield float32
}

// NewGlycolysis builds an internal glycolysis unit.
func NewGlycolysis(b Bundle, cfg config.ChemistryConfig) *Glycolysis {
	return &Glycolysis{reaction: newReaction(b), aminoYield: float32(cfg.AminoAcidYield)}
}

func (*Glycolysis) Name() string { return NameGlycolysis }
func (*Glycolysis) Role() Role   { return RoleInternal }

func (g *Glycolysis) Tick(h Host, dt float32, _ *rand.Rand) TickResult {
	s := h.Chem()
	used := chem.Take(&s.Sugar, g.amount(h, dt))
	s.Energy += used * g.efficiency
	s.AminoAcids += used * g.aminoYield
	return TickResult{}
}

// PolymerSynthesis stores sugar as a polymer, paying energy per unit stored.
type PolymerSynthesis struct {
	reaction
	energyCost float32
	complexity float32
}

// NewPolymerSynthesis builds an internal polymer synthesis unit.
func NewPolymerSynthesis(b Bundle, cfg config.ChemistryConfig) *PolymerSynthesis {
	return &PolymerSynthesis{
		reaction:   newReaction(b),
		energyCost: float32(cfg.PolymerEnergyCost),
		complexity: float32(cfg.PolymerComplexity),
	}
}

func (*PolymerSynthesis) Name() string { return NamePolymerSynthesis }
func (*PolymerSynthesis) Role() Role   { return RoleInternal }

func (p *PolymerSynthesis) Tick(h Host, dt float32, _ *rand.Rand) TickResult {
	s := h.Chem()
	amount := min(p.amount(h, dt), s.Sugar)
	if p.energyCost > 0 && amount*p.energyCost > s.Energy {
		amount = s.Energy / p.energyCost
	}
	if amount <= 0 {
		return TickResult{}
	}
	chem.Take(&s.Energy, amount*p.energyCost)
	used := chem.Take(&s.Sugar, amount)
	if stored := used * p.efficiency; stored > 0 {
		s.Polymers = append(s.Polymers, chem.Polymer{Complexity: p.complexity, Amount: stored})
	}
	return TickResult{}
}

// ProteinSynthesis turns amino acids into proteins.
type ProteinSynthesis struct {
	reaction
}

// NewProteinSynthesis builds an internal protein synthesis unit.
func NewProteinSynthesis(b Bundle) *ProteinSynthesis {
	return &ProteinSynthesis{reaction: newReaction(b)}
}

func (*ProteinSynthesis) Name() string { return NameProteinSynthesis }
func (*ProteinSynthesis) Role() Role   { return RoleInternal }

func (p *ProteinSynthesis) Tick(h Host, dt float32, _ *rand.Rand) TickResult {
	s := h.Chem()
	used := chem.Take(&s.AminoAcids, p.amount(h, dt))
	s.Proteins += used * p.efficiency
	return TickResult{}
}

// PolymerBreakdown releases sugar from the oldest polymer first.
type PolymerBreakdown struct {
	reaction
}

// NewPolymerBreakdown builds an internal polymer breakdown unit.
func NewPolymerBreakdown(b Bundle) *PolymerBreakdown {
	return &PolymerBreakdown{reaction: newReaction(b)}
}

func (*PolymerBreakdown) Name() string { return NamePolymerBreakdown }
func (*PolymerBreakdown) Role() Role   { return RoleInternal }

func (p *PolymerBreakdown) Tick(h Host, dt float32, _ *rand.Rand) TickResult {
	s := h.Chem()
	if len(s.Polymers) == 0 {
		return TickResult{}
	}
	amount := p.amount(h, dt)
	head := &s.Polymers[0]
	if amount < head.Amount {
		head.Amount -= amount
		s.Sugar += amount * head.Complexity * p.efficiency
		return TickResult{}
	}
	s.Sugar += max(head.Amount, 0) * head.Complexity * p.efficiency
	s.Polymers = append(s.Polymers[:0], s.Polymers[1:]...)
	return TickResult{}
}

// Reproduction absorbs a trickle of sugar, pays upkeep for its size, and
// splits the cell once energy reaches the high-water mark.
type Reproduction struct {
	reaction
	intake        float32
	upkeepFactor  float32
	highWaterMark float32
	fissionCost   float32
}

// NewReproduction builds an internal reproduction unit.
func NewReproduction(b Bundle, cfg config.ReproductionConfig) *Reproduction {
	return &Reproduction{
		reaction:      newReaction(b),
		intake:        float32(cfg.SugarIntake),
		upkeepFactor:  float32(cfg.UpkeepFactor),
		highWaterMark: float32(cfg.HighWaterMark),
		fissionCost:   float32(cfg.FissionCost),
	}
}

func (*Reproduction) Name() string { return NameReproduction }
func (*Reproduction) Role() Role   { return RoleInternal }

func (r *Reproduction) Tick(h Host, dt float32, _ *rand.Rand) TickResult {
	if dt <= 0 {
		return TickResult{}
	}
	s := h.Chem()
	s.Sugar += r.intake * dt
	if r.upkeepFactor > 0 {
		chem.Take(&s.Energy, r.size*r.size/r.upkeepFactor*dt)
	}
	if s.Energy >= r.highWaterMark {
		chem.Take(&s.Energy, r.fissionCost)
		h.Divide()
	}
	return TickResult{}
}

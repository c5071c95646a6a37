// Package behavior defines the executable units a cell runs every tick and the
// fixed catalog that builds them from decoded parameter bundles.
package behavior

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/cellsoup/chem"
	"github.com/pthm-cable/cellsoup/genome"
)

// Role says where in the cell a unit lives.
type Role uint8

const (
	RoleInternal Role = iota // cytoplasm
	RoleBoundary             // membrane-facing
)

// String returns the display name for a Role.
func (r Role) String() string {
	switch r {
	case RoleInternal:
		return "internal"
	case RoleBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Host is the cell a unit runs inside. Units receive it on every tick and
// never keep a reference to it.
type Host interface {
	// Chem returns the live chemical state.
	Chem() *chem.State
	// Size returns the current cell size, recomputed on every call.
	Size() float32
	// Push adds a velocity delta.
	Push(dx, dy float32)
	// Divide decodes a child from the host's genome and queues it for spawning.
	Divide()
}

// TickResult carries the structural changes a unit requests.
// Replace swaps the unit for another after the pass; Spawned units are
// added to the cell after the pass.
type TickResult struct {
	Replace Unit
	Spawned []Unit
}

// Unit is one executable reaction or process owned by a cell.
type Unit interface {
	Name() string
	Role() Role
	DeclaredSize() float32
	Tick(h Host, dt float32, rng *rand.Rand) TickResult
}

// Bundle is a decoded, ready-to-build behavior configuration.
type Bundle struct {
	Size        float32
	Proteins    float32 // protein budget
	Sensitivity *genome.WeightList
}

// Kinetics derives rate and efficiency from a bundle's size and protein budget.
// Efficiency saturates toward 1 as proteins per unit size grow. Non-positive
// sizes or budgets give an inert efficiency of 0.
func Kinetics(size, proteins float32) (rate, efficiency float32) {
	rate = size
	if size <= 0 || proteins <= 0 {
		return rate, 0
	}
	ratio := proteins / size
	return rate, ratio / (ratio + 1)
}

// reaction holds the constants every catalog unit shares.
type reaction struct {
	size        float32
	rate        float32
	efficiency  float32
	sensitivity *genome.WeightList
}

func newReaction(b Bundle) reaction {
	rate, eff := Kinetics(b.Size, b.Proteins)
	return reaction{
		size:        b.Size,
		rate:        rate,
		efficiency:  eff,
		sensitivity: b.Sensitivity,
	}
}

// DeclaredSize returns the space the unit occupies.
func (r *reaction) DeclaredSize() float32 { return r.size }

// Rate returns the unit's raw rate.
func (r *reaction) Rate() float32 { return r.rate }

// Efficiency returns the unit's conversion efficiency.
func (r *reaction) Efficiency() float32 { return r.efficiency }

// amount returns the signal-gated quantity the unit wants to process this tick.
// The gate is the sensitivity genome projected to a single value.
func (r *reaction) amount(h Host, dt float32) float32 {
	if r.sensitivity == nil || r.rate <= 0 || dt <= 0 {
		return 0
	}
	gate := r.sensitivity.Project(h.Size(), h.Chem().Signals, 1)[0]
	a := r.rate * dt * gate
	if a <= 0 || math.IsNaN(float64(a)) || math.IsInf(float64(a), 0) {
		return 0
	}
	return a
}

// Package genome implements the weighted-entry genome that behaviors are decoded from.
//
// A genome is a WeightList: a non-empty list of entries sorted by a real-valued
// index. Each entry contributes tanh(base + sensitivity) where the sensitivity term
// is a signal molecule's strength scaled by the entry's signal weight.
package genome

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/cellsoup/chem"
)

// ErrEmptyGenome is returned when a WeightList would contain no entries.
var ErrEmptyGenome = errors.New("genome: weight list must have at least one entry")

// Sensitivity couples an entry to one signal molecule.
type Sensitivity struct {
	Index  int // signal slot; out of range means no coupling
	Weight float32
}

// Weight is a single genome entry.
type Weight struct {
	Index       float32
	Range       float32
	Base        float32
	Sensitivity Sensitivity
}

// value returns tanh(base + sensitivity) for this entry.
func (w *Weight) value(cellSize float32, signals []chem.Signal) float32 {
	var magnitude float32
	if idx := w.Sensitivity.Index; idx >= 0 && idx < len(signals) {
		magnitude = signals[idx].Strength(cellSize) * w.Sensitivity.Weight
	}
	return float32(math.Tanh(float64(w.Base + magnitude)))
}

// WeightList is an immutable, index-sorted genome.
type WeightList struct {
	weights []Weight
}

// New sorts a copy of entries by index. Ties keep their input order.
func New(entries []Weight) (*WeightList, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyGenome
	}
	weights := make([]Weight, len(entries))
	copy(weights, entries)
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Index < weights[j].Index
	})
	return &WeightList{weights: weights}, nil
}

// Len returns the number of entries.
func (wl *WeightList) Len() int {
	return len(wl.weights)
}

// At returns the entry at position i in index order.
func (wl *WeightList) At(i int) Weight {
	return wl.weights[i]
}

// Entries returns a copy of the sorted entries.
func (wl *WeightList) Entries() []Weight {
	out := make([]Weight, len(wl.weights))
	copy(out, wl.weights)
	return out
}

// ValueAt samples the entry at position i. Out-of-range positions yield 0.
func (wl *WeightList) ValueAt(i int, cellSize float32, signals []chem.Signal) float32 {
	if i < 0 || i >= len(wl.weights) {
		return 0
	}
	return wl.weights[i].value(cellSize, signals)
}

// Append returns a new list with w inserted after any entries of equal index.
func (wl *WeightList) Append(w Weight) *WeightList {
	pos := sort.Search(len(wl.weights), func(i int) bool {
		return wl.weights[i].Index > w.Index
	})
	weights := make([]Weight, 0, len(wl.weights)+1)
	weights = append(weights, wl.weights[:pos]...)
	weights = append(weights, w)
	weights = append(weights, wl.weights[pos:]...)
	return &WeightList{weights: weights}
}

// Extend returns a new list containing the entries of wl and ws, re-sorted.
func (wl *WeightList) Extend(ws []Weight) *WeightList {
	merged := make([]Weight, 0, len(wl.weights)+len(ws))
	merged = append(merged, wl.weights...)
	merged = append(merged, ws...)
	out, _ := New(merged) // never empty: wl has at least one entry
	return out
}

// Remove returns a new list without the entry at position i.
func (wl *WeightList) Remove(i int) (*WeightList, error) {
	if i < 0 || i >= len(wl.weights) {
		return nil, fmt.Errorf("genome: remove index %d out of range [0,%d)", i, len(wl.weights))
	}
	if len(wl.weights) == 1 {
		return nil, ErrEmptyGenome
	}
	weights := make([]Weight, 0, len(wl.weights)-1)
	weights = append(weights, wl.weights[:i]...)
	weights = append(weights, wl.weights[i+1:]...)
	return &WeightList{weights: weights}, nil
}

// Package rna decodes a genome into one behavior bundle per catalog slot.
//
// The genome is split in two windows. The leading window is projected into
// three values per slot (activation, size, proteins); the trailing window is
// projected into each slot's sensitivity genome. How many sensitivity entries
// a slot gets depends on the genome's first entry.
package rna

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/cellsoup/behavior"
	"github.com/pthm-cable/cellsoup/chem"
	"github.com/pthm-cable/cellsoup/genome"
)

// ErrDegenerateWindow is reported when a split leaves one side of the genome
// without entries. Decode recovers by substituting a zero placeholder.
var ErrDegenerateWindow = errors.New("rna: degenerate genome window")

const (
	argsPerSlot     = 3 // activation, size, proteins
	fieldsPerEntry  = 5 // index, base, range, signal index, signal weight
	minSplitIndex   = 2
	placeholderBase = 0
)

// Result is a decoded strand.
type Result struct {
	// Bundles has one element per catalog slot. Nil means the slot is not expressed.
	Bundles     []*behavior.Bundle
	WindowCount int
	SplitIndex  int
	// Degenerate is set when any window or sensitivity chunk had to be replaced
	// by a placeholder.
	Degenerate   bool
	Placeholders int
}

// Expressed returns how many slots produced a bundle.
func (r Result) Expressed() int {
	n := 0
	for _, b := range r.Bundles {
		if b != nil {
			n++
		}
	}
	return n
}

// Decode turns a genome into bundles for a catalog with the given number of slots,
// sampling it against the decoding cell's size and signals.
func Decode(wl *genome.WeightList, cellSize float32, signals []chem.Signal, slots int) Result {
	if slots <= 0 {
		return Result{Bundles: []*behavior.Bundle{}}
	}
	res := Result{Bundles: make([]*behavior.Bundle, slots)}
	if wl == nil || wl.Len() == 0 {
		res.Degenerate = true
		return res
	}

	res.WindowCount = windowCount(wl, cellSize, signals)
	res.SplitIndex = splitIndex(wl, res.WindowCount)

	entries := wl.Entries()
	args, err := window(entries[:res.SplitIndex])
	if err != nil {
		args = res.placeholder()
	}
	sens, err := window(entries[res.SplitIndex:])
	if err != nil {
		sens = res.placeholder()
	}

	argVals := args.Project(cellSize, signals, slots*argsPerSlot)

	perSlot := fieldsPerEntry * res.WindowCount
	sensVals := sens.Project(cellSize, signals, slots*perSlot)
	chunkLen := perSlot
	if chunkLen == 0 {
		chunkLen = 1
	}

	for slot := range res.Bundles {
		a := argVals[slot*argsPerSlot : (slot+1)*argsPerSlot]
		if a[0] <= 0 {
			continue
		}
		sensitivity, err := rebuild(chunk(sensVals, slot, chunkLen))
		if err != nil {
			sensitivity = res.placeholder()
		}
		res.Bundles[slot] = &behavior.Bundle{
			Size:        a[1],
			Proteins:    a[2],
			Sensitivity: sensitivity,
		}
	}
	return res
}

// windowCount reads the number of sensitivity entries per slot from the first
// genome entry. The value is a tanh so only 0 or 1 survive the floor and clamp.
func windowCount(wl *genome.WeightList, cellSize float32, signals []chem.Signal) int {
	v := math.Floor(float64(wl.ValueAt(0, cellSize, signals)))
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(v)
}

// splitIndex finds the first entry whose index*range reaches the window count
// (at least 1). The result is at least 2 and never past the end of the genome.
func splitIndex(wl *genome.WeightList, count int) int {
	threshold := float32(max(count, 1))
	split := minSplitIndex
	for i := 0; i < wl.Len(); i++ {
		w := wl.At(i)
		if w.Index*w.Range >= threshold {
			split = i
			break
		}
	}
	split = max(split, minSplitIndex)
	return min(split, wl.Len())
}

func window(entries []genome.Weight) (*genome.WeightList, error) {
	wl, err := genome.New(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateWindow, err)
	}
	return wl, nil
}

// placeholder returns a single zero entry and marks the result degenerate.
func (r *Result) placeholder() *genome.WeightList {
	r.Degenerate = true
	r.Placeholders++
	wl, _ := genome.New([]genome.Weight{{Base: placeholderBase}})
	return wl
}

// chunk returns values[slot*n : (slot+1)*n], clipped to the slice bounds.
func chunk(values []float32, slot, n int) []float32 {
	lo := slot * n
	if lo >= len(values) {
		return nil
	}
	return values[lo:min(lo+n, len(values))]
}

// rebuild reads groups of five values as genome entries. A short final group
// is padded with zeros.
func rebuild(values []float32) (*genome.WeightList, error) {
	if len(values) == 0 {
		return nil, ErrDegenerateWindow
	}
	field := func(i int) float32 {
		if i < len(values) {
			return values[i]
		}
		return 0
	}

	entries := make([]genome.Weight, 0, (len(values)+fieldsPerEntry-1)/fieldsPerEntry)
	for i := 0; i < len(values); i += fieldsPerEntry {
		signal := int(field(i + 3))
		if signal < 0 {
			signal = 0
		}
		entries = append(entries, genome.Weight{
			Index: field(i),
			Base:  field(i + 1),
			Range: field(i + 2),
			Sensitivity: genome.Sensitivity{
				Index:  signal,
				Weight: field(i + 4),
			},
		})
	}
	return genome.New(entries)
}

package genome

import (
	"sort"

	"github.com/pthm-cable/cellsoup/chem"
)

// Domain returns the index span covered by the list: the smallest index and
// the largest index+range.
func (wl *WeightList) Domain() (start, end float32) {
	start = wl.weights[0].Index
	end = start
	for i := range wl.weights {
		if e := wl.weights[i].Index + wl.weights[i].Range; e > end {
			end = e
		}
	}
	return start, end
}

// Project splits the domain into n equal frames and samples one value per frame.
//
// Within a frame the entries are visited in index order and each one overwrites
// the frame's value, so the last entry at or before the frame end wins. The scan
// starts one entry early when no entry sits exactly on the frame start, which
// carries the previous entry into the frame. Frames without entries stay 0.
func (wl *WeightList) Project(cellSize float32, signals []chem.Signal, n int) []float32 {
	if n <= 0 {
		return []float32{}
	}
	out := make([]float32, n)

	start, end := wl.Domain()
	frameWidth := (end - start) / float32(n)

	for k := range out {
		frameStart := start + float32(k)*frameWidth
		frameEnd := frameStart + frameWidth

		first := wl.frameStart(frameStart)
		for i := first; i < len(wl.weights); i++ {
			w := &wl.weights[i]
			if w.Index > frameEnd {
				break
			}
			out[k] = w.value(cellSize, signals)
		}
	}
	return out
}

// frameStart finds where a frame scan begins: the first entry with index >= at
// when one lands exactly on it, otherwise the entry just before the insertion point.
func (wl *WeightList) frameStart(at float32) int {
	i := sort.Search(len(wl.weights), func(i int) bool {
		return wl.weights[i].Index >= at
	})
	if i < len(wl.weights) && wl.weights[i].Index == at {
		return i
	}
	if i > 0 {
		return i - 1
	}
	return 0
}

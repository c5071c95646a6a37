package genome

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/cellsoup/chem"
)

func tanh32(x float64) float32 {
	return float32(math.Tanh(x))
}

func TestProjectLengthAndFinite(t *testing.T) {
	cfg := testGenomeConfig()
	rng := rand.New(rand.NewSource(7))
	signals := []chem.Signal{{Amount: 1}, {Amount: 3}, {Amount: 0.5}}

	for trial := 0; trial < 100; trial++ {
		wl := Random(rng, cfg)
		size := rng.Float32() * 20
		for _, n := range []int{0, 1, 100} {
			out := wl.Project(size, signals, n)
			if len(out) != n {
				t.Fatalf("trial %d: Project(n=%d) returned %d values", trial, n, len(out))
			}
			for i, v := range out {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("trial %d: value %d is not finite: %v", trial, i, v)
				}
			}
		}
	}
}

func TestProjectDegenerateSingleEntry(t *testing.T) {
	wl, _ := New([]Weight{{Index: 3, Range: 0, Base: 0.7}})
	want := tanh32(0.7)
	for _, n := range []int{1, 2, 17, 1000} {
		out := wl.Project(1, nil, n)
		for i, v := range out {
			if v != want {
				t.Fatalf("n=%d frame %d = %v, want %v", n, i, v, want)
			}
		}
	}
}

func TestProjectOverwritesWithinFrame(t *testing.T) {
	// Domain [0, 4], two frames of width 2. Frame 0 sees entries at 0, 1, 2;
	// the entry at 2 lands on the boundary and wins. Frame 1 starts exactly on 2
	// and sees 2 and 3.5.
	wl, _ := New([]Weight{
		{Index: 0, Base: 0.1},
		{Index: 1, Base: 0.2},
		{Index: 2, Base: 0.3},
		{Index: 3.5, Range: 0.5, Base: 0.4},
	})
	out := wl.Project(1, nil, 2)
	if out[0] != tanh32(0.3) {
		t.Errorf("frame 0 = %v, want last entry tanh(0.3)", out[0])
	}
	if out[1] != tanh32(0.4) {
		t.Errorf("frame 1 = %v, want tanh(0.4)", out[1])
	}
}

func TestProjectCarriesPreviousEntry(t *testing.T) {
	// Domain [0, 10] in 5 frames of width 2. Frame 1 ([2,4]) has no entries of
	// its own but the scan starts one entry early, so it carries entry 0.
	wl, _ := New([]Weight{
		{Index: 0, Base: 0.5},
		{Index: 9, Range: 1, Base: -0.5},
	})
	out := wl.Project(1, nil, 5)
	for k := 0; k < 4; k++ {
		if out[k] != tanh32(0.5) {
			t.Errorf("frame %d = %v, want carried tanh(0.5)", k, out[k])
		}
	}
	if out[4] != tanh32(-0.5) {
		t.Errorf("frame 4 = %v, want tanh(-0.5)", out[4])
	}
}

func TestProjectUsesSignals(t *testing.T) {
	wl, _ := New([]Weight{{Index: 0, Range: 1, Base: 0, Sensitivity: Sensitivity{Index: 0, Weight: 1}}})
	signals := []chem.Signal{{Amount: 2}}
	out := wl.Project(4, signals, 1)
	if want := tanh32(0.5); out[0] != want {
		t.Errorf("Project = %v, want %v", out[0], want)
	}
}

func TestDomain(t *testing.T) {
	wl, _ := New([]Weight{
		{Index: 2, Range: 10},
		{Index: 5, Range: 1},
		{Index: -1, Range: 0},
	})
	start, end := wl.Domain()
	if start != -1 || end != 12 {
		t.Errorf("Domain() = [%v, %v], want [-1, 12]", start, end)
	}
}

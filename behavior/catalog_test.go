package behavior

import (
	"errors"
	"testing"

	"github.com/pthm-cable/cellsoup/genome"
)

func TestCatalogOrder(t *testing.T) {
	cat := NewCatalog(testChemistry(), testReproduction())
	want := []string{
		NameLocomotion,
		NameGlycolysis,
		NamePolymerSynthesis,
		NameProteinSynthesis,
		NamePolymerBreakdown,
		NameReproduction,
	}
	names := cat.Names()
	if len(names) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, names[i], want[i])
		}
		if idx, ok := cat.Index(want[i]); !ok || idx != i {
			t.Errorf("Index(%q) = %d, %v", want[i], idx, ok)
		}
	}
}

func TestCatalogBuildMatchesEntry(t *testing.T) {
	cat := NewCatalog(testChemistry(), testReproduction())
	sens, _ := genome.New([]genome.Weight{{Base: 1}})
	for i := 0; i < cat.Len(); i++ {
		e, _ := cat.Entry(i)
		u, err := cat.Build(i, Bundle{Size: 1.5, Proteins: 1, Sensitivity: sens})
		if err != nil {
			t.Fatalf("Build(%d): %v", i, err)
		}
		if u.Name() != e.Name || u.Role() != e.Role {
			t.Errorf("slot %d built %s/%s, entry says %s/%s", i, u.Name(), u.Role(), e.Name, e.Role)
		}
		if u.DeclaredSize() != 1.5 {
			t.Errorf("slot %d declared size = %v, want 1.5", i, u.DeclaredSize())
		}
	}
	if e, _ := cat.Entry(0); e.Role != RoleBoundary {
		t.Errorf("locomotion should be a boundary unit, got %s", e.Role)
	}
}

func TestCatalogBuildOutOfRange(t *testing.T) {
	cat := NewCatalog(testChemistry(), testReproduction())
	for _, i := range []int{-1, cat.Len(), 100} {
		if _, err := cat.Build(i, Bundle{}); !errors.Is(err, ErrUnknownBehavior) {
			t.Errorf("Build(%d) error = %v, want ErrUnknownBehavior", i, err)
		}
	}
}

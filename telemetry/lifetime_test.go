package telemetry

import "testing"

func TestLifetimeTracker_Lineage(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(LifetimeStats{ID: 1})
	lt.Register(LifetimeStats{ID: 2, ParentID: 1, Generation: 1})
	lt.Register(LifetimeStats{ID: 3, ParentID: 2, Generation: 2})
	lt.Register(LifetimeStats{ID: 4})
	lt.Register(LifetimeStats{ID: 5, ParentID: 99})

	tests := []struct {
		id      uint32
		lineage uint32
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 4},
		{5, 5}, // unknown parent starts a new lineage
	}
	for _, tt := range tests {
		if got := lt.Get(tt.id).LineageID; got != tt.lineage {
			t.Errorf("cell %d lineage = %d, want %d", tt.id, got, tt.lineage)
		}
	}
	if got := lt.ActiveLineages(); got != 3 {
		t.Errorf("ActiveLineages() = %d, want 3", got)
	}
}

func TestLifetimeTracker_ObserveAndRemove(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(LifetimeStats{ID: 7, BirthTick: 10})

	lt.Observe(7, 3, 1)
	lt.Observe(7, 1, 4)
	lt.RecordChild(7)
	lt.RecordChild(7)
	lt.Observe(8, 100, 100) // untracked
	lt.RecordChild(8)

	final := lt.Remove(7, 30, 0.5)
	if final == nil {
		t.Fatal("Remove returned nil for a tracked cell")
	}
	if final.PeakEnergy != 3 || final.PeakSize != 4 {
		t.Errorf("peaks = %v/%v, want 3/4", final.PeakEnergy, final.PeakSize)
	}
	if final.Children != 2 {
		t.Errorf("children = %d, want 2", final.Children)
	}
	if final.DeathTick != 30 || final.AgeSec != 10 {
		t.Errorf("death tick %d age %v, want 30 and 10", final.DeathTick, final.AgeSec)
	}
	if lt.Count() != 0 {
		t.Errorf("Count() = %d after removal, want 0", lt.Count())
	}
	if lt.Remove(7, 31, 0.5) != nil {
		t.Error("second Remove should return nil")
	}
}

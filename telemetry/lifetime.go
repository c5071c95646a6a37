package telemetry

// LifetimeStats tracks one cell from placement to removal.
type LifetimeStats struct {
	ID         uint32  `csv:"id"`
	ParentID   uint32  `csv:"parent_id"` // 0 for seeded cells
	LineageID  uint32  `csv:"lineage_id"`
	Generation int     `csv:"generation"`
	BirthTick  int32   `csv:"birth_tick"`
	DeathTick  int32   `csv:"death_tick"`
	AgeSec     float32 `csv:"age_sec"`
	Children   int     `csv:"children"`
	Units      int     `csv:"units"`
	GenomeLen  int     `csv:"genome_len"`
	PeakEnergy float32 `csv:"peak_energy"`
	PeakSize   float32 `csv:"peak_size"`
	Degenerate bool    `csv:"degenerate"`
}

// LifetimeTracker manages per-cell lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates an empty tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{stats: make(map[uint32]*LifetimeStats)}
}

// Register starts tracking a cell. The lineage is inherited from the parent,
// or started fresh for a seeded cell.
func (lt *LifetimeTracker) Register(s LifetimeStats) {
	if s.LineageID == 0 {
		if parent := lt.stats[s.ParentID]; s.ParentID != 0 && parent != nil {
			s.LineageID = parent.LineageID
		} else {
			s.LineageID = s.ID
		}
	}
	lt.stats[s.ID] = &s
}

// Get returns the stats for a cell, or nil if it is not tracked.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// RecordChild increments the parent's child count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// Observe updates running peaks.
func (lt *LifetimeTracker) Observe(id uint32, energy, size float32) {
	s := lt.stats[id]
	if s == nil {
		return
	}
	s.PeakEnergy = max(s.PeakEnergy, energy)
	s.PeakSize = max(s.PeakSize, size)
}

// Remove stops tracking a cell and returns its final stats with the death
// tick and age filled in. Returns nil if the cell was not tracked.
func (lt *LifetimeTracker) Remove(id uint32, tick int32, dt float32) *LifetimeStats {
	s := lt.stats[id]
	if s == nil {
		return nil
	}
	delete(lt.stats, id)
	s.DeathTick = tick
	s.AgeSec = float32(tick-s.BirthTick) * dt
	return s
}

// Count returns the number of tracked cells.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// ActiveLineages returns the number of distinct lineages among tracked cells.
func (lt *LifetimeTracker) ActiveLineages() int {
	seen := make(map[uint32]struct{})
	for _, s := range lt.stats {
		seen[s.LineageID] = struct{}{}
	}
	return len(seen)
}

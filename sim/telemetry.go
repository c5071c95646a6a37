package sim

import (
	"log/slog"

	"github.com/pthm-cable/cellsoup/telemetry"
)

// flushTelemetry closes the stats window when due, then logs and writes the
// window, the perf summary and any bookmarks it triggers.
func (w *World) flushTelemetry() {
	if !w.collector.ShouldFlush(w.tick) {
		return
	}

	w.samplePopulation()
	stats := w.collector.Flush(w.tick, &w.sample)
	w.lastStats = stats
	perfStats := w.perf.Stats()

	if w.onStats != nil {
		w.onStats(stats)
	}
	if w.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if err := w.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := w.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range w.bookmarks.Check(stats) {
		if w.logStats {
			bm.LogBookmark()
		}
		if err := w.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// samplePopulation fills the reusable sample with every live cell.
func (w *World) samplePopulation() {
	w.sample.Reset()
	query := w.filter.Query()
	for query.Next() {
		_, _, org := query.Get()
		c := org.Cell
		s := c.Chem()
		w.sample.Add(s.Energy, c.Size(), s.Sugar, c.UnitCount(), c.Genome().Len(), c.Generation)
	}
	w.sample.Lineages = w.lifetimes.ActiveLineages()
}

// SampleNow returns window stats for the current population without
// closing the collector window.
func (w *World) SampleNow() telemetry.WindowStats {
	w.samplePopulation()
	s := telemetry.Summarize(w.sample.Energies)
	size := telemetry.Summarize(w.sample.Sizes)
	return telemetry.WindowStats{
		WindowEndTick: w.tick,
		SimTimeSec:    float64(w.tick) * float64(w.cfg.Derived.DT32),
		Population:    w.sample.Len(),
		EnergyMean:    s.Mean,
		EnergyP10:     s.P10,
		EnergyP50:     s.P50,
		EnergyP90:     s.P90,
		SizeMean:      size.Mean,
		SizeStd:       size.Std,
		MaxGeneration: w.sample.MaxGeneration,
		Lineages:      w.sample.Lineages,
	}
}

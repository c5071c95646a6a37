package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window end")
	}
}

func TestCollectorDegenerateDT(t *testing.T) {
	if got := NewCollector(10, 0).WindowDurationTicks(); got != 1 {
		t.Errorf("window ticks with dt=0 = %d, want 1", got)
	}
	if got := NewCollector(0.01, 1).WindowDurationTicks(); got != 1 {
		t.Errorf("window shorter than a tick = %d, want 1", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)
	c.RecordBirth()
	c.RecordBirth()
	c.RecordDivision()
	c.RecordDivision()
	c.RecordDivision()
	c.RecordCapped()
	c.RecordDeath()
	c.RecordRespawn()
	c.RecordDegenerate()

	var sample PopulationSample
	sample.Add(1, 2, 0.5, 3, 10, 1)
	sample.Add(3, 4, 1.5, 5, 30, 4)
	sample.Lineages = 2

	stats := c.Flush(4, &sample)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 4 {
		t.Errorf("window = [%d,%d], want [0,4]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 2 {
		t.Errorf("sim time = %v, want 2", stats.SimTimeSec)
	}
	if stats.Births != 2 || stats.Divisions != 3 || stats.Capped != 1 || stats.Deaths != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.Respawns != 1 || stats.Degenerate != 1 {
		t.Errorf("respawn/degenerate counts wrong: %+v", stats)
	}
	if stats.Population != 2 || stats.MaxGeneration != 4 || stats.Lineages != 2 {
		t.Errorf("population fields wrong: %+v", stats)
	}
	if math.Abs(stats.EnergyMean-2) > 1e-9 || math.Abs(stats.SizeMean-3) > 1e-9 {
		t.Errorf("means = energy %v size %v, want 2 and 3", stats.EnergyMean, stats.SizeMean)
	}
	if math.Abs(stats.UnitsMean-4) > 1e-9 || math.Abs(stats.SugarMean-1) > 1e-9 {
		t.Errorf("units mean %v sugar mean %v, want 4 and 1", stats.UnitsMean, stats.SugarMean)
	}

	next := c.Flush(8, &PopulationSample{})
	if next.Births != 0 || next.Divisions != 0 || next.Deaths != 0 {
		t.Errorf("counters not reset after flush: %+v", next)
	}
	if next.WindowStartTick != 4 {
		t.Errorf("next window start = %d, want 4", next.WindowStartTick)
	}
}

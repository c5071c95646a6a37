package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/cellsoup/config"
	"github.com/pthm-cable/cellsoup/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	pv := NewParamVector()
	for _, spec := range pv.Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		if i%2 == 0 {
			v[i] = spec.Max + 100
		} else {
			v[i] = spec.Min - 100
		}
	}
	got := pv.Clamp(v)
	for i, spec := range pv.Specs {
		want := spec.Min
		if i%2 == 0 {
			want = spec.Max
		}
		if got[i] != want {
			t.Errorf("%s: clamp = %v, want %v", spec.Name, got[i], want)
		}
	}
}

func TestApplyAndExtract(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()

	want := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		want[i] = spec.Min + 0.25*(spec.Max-spec.Min)
	}
	pv.ApplyToConfig(cfg, want)

	got := pv.ExtractFromConfig(cfg)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
	if cfg.Cell.InflowRate != want[0] {
		t.Errorf("inflow_rate not applied: %v", cfg.Cell.InflowRate)
	}
}

func TestConfigForLeavesBaseUntouched(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 10, []int64{1}, base)

	x := pv.DefaultVector()
	x[0] = 33
	cfg := fe.configFor(x)

	if cfg.Cell.InflowRate != 33 {
		t.Errorf("copy inflow_rate = %v, want 33", cfg.Cell.InflowRate)
	}
	if base.Cell.InflowRate == 33 {
		t.Error("base config was modified")
	}
	if cfg.Physics.Workers != 1 {
		t.Errorf("workers = %d, want 1", cfg.Physics.Workers)
	}
}

func TestScore(t *testing.T) {
	steady := func(n int) []telemetry.WindowStats {
		ws := make([]telemetry.WindowStats, n)
		for i := range ws {
			ws[i] = telemetry.WindowStats{Population: 50, Births: 10}
		}
		return ws
	}

	t.Run("too short", func(t *testing.T) {
		p, q := score(steady(warmupWindows))
		if p != 0 || q != 0 {
			t.Errorf("score = (%v, %v), want zeros", p, q)
		}
	})

	t.Run("steady population", func(t *testing.T) {
		p, q := score(steady(warmupWindows + 5))
		if p != 5 {
			t.Errorf("persistence = %v, want 5", p)
		}
		if q <= 0.5 || q > 1 {
			t.Errorf("quality = %v, want in (0.5, 1]", q)
		}
	})

	t.Run("respawn windows excluded", func(t *testing.T) {
		ws := steady(warmupWindows + 4)
		ws[warmupWindows].Respawns = 20
		ws[warmupWindows+1].Population = 2
		p, _ := score(ws)
		if p != 2 {
			t.Errorf("persistence = %v, want 2", p)
		}
	})
}

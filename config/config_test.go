package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Cell.DeathThreshold != 0.1 {
		t.Errorf("death threshold = %v, want 0.1", cfg.Cell.DeathThreshold)
	}
	if cfg.Reproduction.HighWaterMark != 15 || cfg.Reproduction.FissionCost != 10 {
		t.Errorf("reproduction thresholds = %v/%v, want 15/10",
			cfg.Reproduction.HighWaterMark, cfg.Reproduction.FissionCost)
	}
	if cfg.Chemistry.AminoAcidYield != 0.1 {
		t.Errorf("amino acid yield = %v, want 0.1", cfg.Chemistry.AminoAcidYield)
	}
	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) {
		t.Errorf("world width should default to screen width, got %v", cfg.Derived.WorldW32)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Error("derived dt should be positive")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("cell:\n  death_threshold: 0.5\nworld:\n  width: 4000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cell.DeathThreshold != 0.5 {
		t.Errorf("death threshold = %v, want 0.5", cfg.Cell.DeathThreshold)
	}
	if cfg.Derived.WorldW32 != 4000 {
		t.Errorf("world width = %v, want 4000", cfg.Derived.WorldW32)
	}
	// Untouched fields keep defaults
	if cfg.Reproduction.HighWaterMark != 15 {
		t.Errorf("high water mark = %v, want default 15", cfg.Reproduction.HighWaterMark)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("genome:\n  min_entries: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for min_entries = 0")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.Max = 1234

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written config failed: %v", err)
	}
	if loaded.Population.Max != 1234 {
		t.Errorf("population max = %d, want 1234", loaded.Population.Max)
	}
}

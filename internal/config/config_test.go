package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Detection.MinArea != 2500 {
		t.Errorf("MinArea = %v, want 2500", cfg.Detection.MinArea)
	}
	if cfg.Detection.MaxAreaRatio != 0.8 {
		t.Errorf("MaxAreaRatio = %v, want 0.8", cfg.Detection.MaxAreaRatio)
	}
	if cfg.Detection.TextOverlapThreshold != 0.3 {
		t.Errorf("TextOverlapThreshold = %v, want 0.3", cfg.Detection.TextOverlapThreshold)
	}
	if cfg.Detection.ThresholdBlock != 11 || cfg.Detection.ThresholdC != 2 {
		t.Errorf("adaptive threshold = (%d, %d), want (11, 2)",
			cfg.Detection.ThresholdBlock, cfg.Detection.ThresholdC)
	}
	if cfg.Detection.EdgeDensityThreshold != 0.15 {
		t.Errorf("EdgeDensityThreshold = %v, want 0.15", cfg.Detection.EdgeDensityThreshold)
	}
	if cfg.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.DPI)
	}
	if cfg.ImageFormat != "png" {
		t.Errorf("ImageFormat = %s, want png", cfg.ImageFormat)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.DPI = 150
	cfg.Detection.MinArea = 1000
	cfg.Visualize = true

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DPI != 150 {
		t.Errorf("DPI = %d, want 150", loaded.DPI)
	}
	if loaded.Detection.MinArea != 1000 {
		t.Errorf("MinArea = %v, want 1000", loaded.Detection.MinArea)
	}
	if !loaded.Visualize {
		t.Errorf("Visualize not preserved")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "dpi: 72\ndetection:\n  min_area: 500\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DPI != 72 {
		t.Errorf("DPI = %d, want 72", cfg.DPI)
	}
	if cfg.Detection.MinArea != 500 {
		t.Errorf("MinArea = %v, want 500", cfg.Detection.MinArea)
	}
	// untouched keys keep defaults
	if cfg.Detection.MaxAreaRatio != 0.8 {
		t.Errorf("MaxAreaRatio = %v, want default 0.8", cfg.Detection.MaxAreaRatio)
	}
	if cfg.ImageFormat != "png" {
		t.Errorf("ImageFormat = %s, want default png", cfg.ImageFormat)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Load of a missing file succeeded")
	}
}

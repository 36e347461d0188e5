package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestDefault sanity-checks the standard configuration
func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.GridSize != 10 || cfg.Width != 2000 || cfg.Height != 1500 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.SmartRouting {
		t.Error("smart routing should default on")
	}
}

// TestLoad_OverridesDefaults merges file values over defaults
func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, "grid_size: 5\nobstacle_padding: 10\nsmart_routing: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GridSize != 5 {
		t.Errorf("GridSize = %v, want 5", cfg.GridSize)
	}
	if cfg.ObstaclePadding != 10 {
		t.Errorf("ObstaclePadding = %v, want 10", cfg.ObstaclePadding)
	}
	if cfg.SmartRouting {
		t.Error("SmartRouting should be off")
	}
	// Untouched fields keep defaults.
	if cfg.Width != 2000 || cfg.SymbolScale != 1.0 {
		t.Errorf("defaults clobbered: %+v", cfg)
	}
}

// TestLoad_RejectsInvalid covers tag and cross-field failures
func TestLoad_RejectsInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"zero grid":      "grid_size: 0\n",
		"negative pad":   "obstacle_padding: -5\n",
		"grid too large": "grid_size: 5000\n",
		"bad yaml":       "grid_size: [\n",
	} {
		path := writeConfig(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

// TestLoad_MissingFile
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

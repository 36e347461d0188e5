// Package config holds the drawing/routing configuration. Settings are an
// explicit struct threaded into the router and ingestion layers, never
// ambient package state.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// DrawingConfig controls grid resolution, drawing extents, and routing
// behavior.
type DrawingConfig struct {
	// GridSize is the routing cell size in world units.
	GridSize float64 `yaml:"grid_size" validate:"required,gt=0"`
	// Width and Height are the drawing extents in world units.
	Width  float64 `yaml:"width" validate:"required,gt=0"`
	Height float64 `yaml:"height" validate:"required,gt=0"`
	// ObstaclePadding is the clearance added around component footprints.
	ObstaclePadding float64 `yaml:"obstacle_padding" validate:"gte=0"`
	// SymbolScale multiplies component footprint dimensions at ingest.
	SymbolScale float64 `yaml:"symbol_scale" validate:"required,gt=0"`
	// SmartRouting selects grid A* routing; when false, pipes get the
	// cheap orthogonal heuristic instead.
	SmartRouting bool `yaml:"smart_routing"`
}

// Default returns the standard drawing configuration.
func Default() DrawingConfig {
	return DrawingConfig{
		GridSize:        10,
		Width:           2000,
		Height:          1500,
		ObstaclePadding: 20,
		SymbolScale:     1.0,
		SmartRouting:    true,
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (DrawingConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the struct tags and cross-field constraints.
func (c DrawingConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.GridSize > c.Width || c.GridSize > c.Height {
		return fmt.Errorf("invalid config: grid_size %v exceeds drawing extents %vx%v",
			c.GridSize, c.Width, c.Height)
	}
	return nil
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/logger"
	"github.com/SoftbearStudios/biomegen/terrain/noise"
)

var ErrInvalid = errors.New("invalid config")

// ValidationError names the offending field. It matches both ErrInvalid and Err with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalid, e.Err}
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func invalidf(field, format string, args ...interface{}) error {
	return invalid(field, fmt.Errorf(format, args...))
}

// Validate returns the first problem found, as a *ValidationError.
func (cfg *Config) Validate() error {
	l := &cfg.Level
	if l.TileRows <= 0 || l.TileCols <= 0 {
		return invalidf("level", "need at least one tile, got %dx%d", l.TileRows, l.TileCols)
	}
	if l.TileHeight <= 0 || l.TileWidth <= 0 {
		return invalidf("level", "tile vertices must be positive, got %dx%d", l.TileHeight, l.TileWidth)
	}
	if l.TileSize <= 0 {
		return invalidf("level.tile_size", "must be positive, got %g", l.TileSize)
	}

	t := &cfg.Terrain
	if t.MapScale <= 0 {
		return invalidf("terrain.map_scale", "must be positive, got %g", t.MapScale)
	}
	if t.MaxDistance < 0 {
		return invalidf("terrain.max_distance", "must not be negative, got %g", t.MaxDistance)
	}

	classifier, err := cfg.ClassifierConfig()
	if err != nil {
		return invalid("terrain", err)
	}
	if err := classifier.Validate(); err != nil {
		return invalid("terrain", err)
	}

	water := false
	for i := range classifier.Height.Types {
		water = water || classifier.Height.Types[i].Water()
	}
	if !water {
		return invalidf("terrain.height.types", "no terrain type is water")
	}

	biomes := len(t.Biomes)
	v := &cfg.Vegetation
	if v.Scale <= 0 {
		return invalidf("vegetation.scale", "must be positive, got %g", v.Scale)
	}
	if len(v.Radius) < biomes {
		return invalidf("vegetation.radius", "have %d, need one per biome (%d)", len(v.Radius), biomes)
	}
	if len(v.Prefabs) < biomes {
		return invalidf("vegetation.prefabs", "have %d, need one per biome (%d)", len(v.Prefabs), biomes)
	}
	for i, r := range v.Radius {
		if r < 0 {
			return invalidf(fmt.Sprintf("vegetation.radius[%d]", i), "must not be negative, got %d", r)
		}
	}

	if cfg.River.Count < 0 {
		return invalidf("river.count", "must not be negative, got %d", cfg.River.Count)
	}
	if cfg.River.MaxOriginAttempts < 0 {
		return invalidf("river.max_origin_attempts", "must not be negative, got %d", cfg.River.MaxOriginAttempts)
	}
	if _, err := cfg.RiverConfig(); err != nil {
		return invalid("river", err)
	}

	if _, err := noise.New(cfg.Noise.Backend, 0); err != nil {
		return invalid("noise.backend", err)
	}
	if _, err := cfg.VisualizationMode(); err != nil {
		return invalid("output.mode", err)
	}
	if cfg.Output.ImageScale < 0 {
		return invalidf("output.image_scale", "must not be negative, got %d", cfg.Output.ImageScale)
	}
	if !logger.ValidLevel(cfg.Logging.Level) {
		return invalidf("logging.level", "unknown level %q", cfg.Logging.Level)
	}
	if file := &cfg.Logging.File; file.MaxSizeMB < 0 || file.MaxBackups < 0 || file.MaxAgeDays < 0 {
		return invalidf("logging.file", "rotation limits must not be negative")
	}
	if err := cfg.Cloud.Validate(); err != nil {
		return invalid("cloud", err)
	}

	return nil
}

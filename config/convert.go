// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"github.com/SoftbearStudios/biomegen/generator"
	"github.com/SoftbearStudios/biomegen/river"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/vegetation"
)

func waves(configs []WaveConfig) []terrain.Wave {
	waves := make([]terrain.Wave, len(configs))
	for i, w := range configs {
		waves[i] = terrain.Wave{Seed: w.Seed, Frequency: w.Frequency, Amplitude: w.Amplitude}
	}
	return waves
}

func (layer *LayerConfig) build() (terrain.Layer, error) {
	var curve terrain.Curve
	if len(layer.Curve) > 0 {
		curve = make(terrain.Curve, len(layer.Curve))
		for i, k := range layer.Curve {
			curve[i] = terrain.Key{Time: k.Time, Value: k.Value}
		}
	}

	types := make([]terrain.TerrainType, len(layer.Types))
	for i, t := range layer.Types {
		color, err := terrain.ParseColor(t.Color)
		if err != nil {
			return terrain.Layer{}, fmt.Errorf("types[%d]: %w", i, err)
		}
		types[i] = terrain.TerrainType{
			Name:      t.Name,
			Threshold: t.Threshold,
			Color:     color,
			Index:     i,
		}
		if t.Water {
			types[i].Role = terrain.RoleWater
		}
	}

	return terrain.Layer{
		Waves: waves(layer.Waves),
		Curve: curve,
		Types: types,
	}, nil
}

func (cfg *TerrainConfig) biomes() (terrain.BiomeTable, error) {
	byName := make(map[string]terrain.Biome, len(cfg.Biomes))
	for i, b := range cfg.Biomes {
		color, err := terrain.ParseColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("biomes[%d]: %w", i, err)
		}
		if _, ok := byName[b.Name]; ok {
			return nil, fmt.Errorf("biomes[%d]: duplicate biome %q", i, b.Name)
		}
		byName[b.Name] = terrain.Biome{Name: b.Name, Color: color, Index: i}
	}

	table := make(terrain.BiomeTable, len(cfg.BiomeTable))
	for m, row := range cfg.BiomeTable {
		table[m] = make([]terrain.Biome, len(row))
		for h, name := range row {
			biome, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("biome_table[%d][%d]: unknown biome %q", m, h, name)
			}
			table[m][h] = biome
		}
	}
	return table, nil
}

// ClassifierConfig converts the terrain section.
func (cfg *Config) ClassifierConfig() (terrain.ClassifierConfig, error) {
	t := &cfg.Terrain

	height, err := t.Height.build()
	if err != nil {
		return terrain.ClassifierConfig{}, fmt.Errorf("height: %w", err)
	}
	heat, err := t.Heat.build()
	if err != nil {
		return terrain.ClassifierConfig{}, fmt.Errorf("heat: %w", err)
	}
	moisture, err := t.Moisture.build()
	if err != nil {
		return terrain.ClassifierConfig{}, fmt.Errorf("moisture: %w", err)
	}
	biomes, err := t.biomes()
	if err != nil {
		return terrain.ClassifierConfig{}, err
	}

	return terrain.ClassifierConfig{
		Height:           height,
		Heat:             heat,
		Moisture:         moisture,
		Biomes:           biomes,
		MapScale:         t.MapScale,
		HeightMultiplier: t.HeightMultiplier,
		CenterRow:        t.CenterRow,
		MaxDistance:      t.MaxDistance,
	}, nil
}

func (cfg *Config) RiverConfig() (river.Config, error) {
	color, err := terrain.ParseColor(cfg.River.Color)
	if err != nil {
		return river.Config{}, fmt.Errorf("color: %w", err)
	}
	return river.Config{
		Count:             cfg.River.Count,
		HeightThreshold:   cfg.River.HeightThreshold,
		Color:             color.Color(),
		MaxOriginAttempts: cfg.River.MaxOriginAttempts,
	}, nil
}

func (cfg *Config) VegetationConfig() vegetation.Config {
	return vegetation.Config{
		Waves:   waves(cfg.Vegetation.Waves),
		Scale:   cfg.Vegetation.Scale,
		Radius:  append([]int(nil), cfg.Vegetation.Radius...),
		Prefabs: append([]string(nil), cfg.Vegetation.Prefabs...),
	}
}

// GeneratorConfig converts every generation section. Call Validate first for field-level errors.
func (cfg *Config) GeneratorConfig() (generator.Config, error) {
	classifier, err := cfg.ClassifierConfig()
	if err != nil {
		return generator.Config{}, fmt.Errorf("terrain: %w", err)
	}
	riverConfig, err := cfg.RiverConfig()
	if err != nil {
		return generator.Config{}, fmt.Errorf("river: %w", err)
	}
	return generator.Config{
		TileRows:   cfg.Level.TileRows,
		TileCols:   cfg.Level.TileCols,
		TileHeight: cfg.Level.TileHeight,
		TileWidth:  cfg.Level.TileWidth,
		TileSize:   cfg.Level.TileSize,
		Classifier: classifier,
		River:      riverConfig,
		Vegetation: cfg.VegetationConfig(),
	}, nil
}

// VisualizationMode parses Output.Mode.
func (cfg *Config) VisualizationMode() (terrain.VisualizationMode, error) {
	return terrain.ParseVisualizationMode(cfg.Output.Mode)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads generation settings from defaults, a YAML or TOML file and flags.
package config

import (
	"github.com/SoftbearStudios/biomegen/cloud"
	"github.com/SoftbearStudios/biomegen/logger"
)

type Config struct {
	Level      LevelConfig      `yaml:"level" toml:"level"`
	Terrain    TerrainConfig    `yaml:"terrain" toml:"terrain"`
	Noise      NoiseConfig      `yaml:"noise" toml:"noise"`
	River      RiverConfig      `yaml:"river" toml:"river"`
	Vegetation VegetationConfig `yaml:"vegetation" toml:"vegetation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Cloud      cloud.Config     `yaml:"cloud" toml:"cloud"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// LevelConfig is the tile grid.
type LevelConfig struct {
	TileRows   int     `yaml:"tile_rows" toml:"tile_rows"`
	TileCols   int     `yaml:"tile_cols" toml:"tile_cols"`
	TileHeight int     `yaml:"tile_height" toml:"tile_height"` // vertices
	TileWidth  int     `yaml:"tile_width" toml:"tile_width"`   // vertices
	TileSize   float32 `yaml:"tile_size" toml:"tile_size"`     // world units
}

type WaveConfig struct {
	Seed      float32 `yaml:"seed" toml:"seed"`
	Frequency float32 `yaml:"frequency" toml:"frequency"`
	Amplitude float32 `yaml:"amplitude" toml:"amplitude"`
}

type KeyConfig struct {
	Time  float32 `yaml:"time" toml:"time"`
	Value float32 `yaml:"value" toml:"value"`
}

type TerrainTypeConfig struct {
	Name      string  `yaml:"name" toml:"name"`
	Threshold float32 `yaml:"threshold" toml:"threshold"`
	Color     string  `yaml:"color" toml:"color"`
	Water     bool    `yaml:"water,omitempty" toml:"water"`
}

type LayerConfig struct {
	Waves []WaveConfig        `yaml:"waves" toml:"waves"`
	Curve []KeyConfig         `yaml:"curve" toml:"curve"`
	Types []TerrainTypeConfig `yaml:"types" toml:"types"`
}

type BiomeConfig struct {
	Name  string `yaml:"name" toml:"name"`
	Color string `yaml:"color" toml:"color"`
}

type TerrainConfig struct {
	MapScale         float32 `yaml:"map_scale" toml:"map_scale"`
	HeightMultiplier float32 `yaml:"height_multiplier" toml:"height_multiplier"`
	CenterRow        float32 `yaml:"center_row" toml:"center_row"`
	MaxDistance      float32 `yaml:"max_distance" toml:"max_distance"`

	Height   LayerConfig `yaml:"height" toml:"height"`
	Heat     LayerConfig `yaml:"heat" toml:"heat"`
	Moisture LayerConfig `yaml:"moisture" toml:"moisture"`

	// Biomes are indexed by position.
	Biomes []BiomeConfig `yaml:"biomes" toml:"biomes"`
	// BiomeTable holds biome names indexed [moisture][heat].
	BiomeTable [][]string `yaml:"biome_table" toml:"biome_table"`
}

type NoiseConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	// Seed 0 picks a random seed.
	Seed int64 `yaml:"seed" toml:"seed"`
}

type RiverConfig struct {
	Count             int     `yaml:"count" toml:"count"`
	HeightThreshold   float32 `yaml:"height_threshold" toml:"height_threshold"`
	Color             string  `yaml:"color" toml:"color"`
	MaxOriginAttempts int     `yaml:"max_origin_attempts" toml:"max_origin_attempts"`
}

type VegetationConfig struct {
	Scale float32      `yaml:"scale" toml:"scale"`
	Waves []WaveConfig `yaml:"waves" toml:"waves"`
	// Radius and Prefabs are indexed like Terrain.Biomes.
	Radius  []int    `yaml:"radius" toml:"radius"`
	Prefabs []string `yaml:"prefabs" toml:"prefabs"`
}

type OutputConfig struct {
	Snapshot string `yaml:"snapshot" toml:"snapshot"`
	Image    string `yaml:"image" toml:"image"`
	Mode     string `yaml:"mode" toml:"mode"` // biome, height, heat or moisture
	// ImageScale is the width in pixels of one cell.
	ImageScale int `yaml:"image_scale" toml:"image_scale"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File is the rotating log file. An empty path logs to the console only.
	File logger.FileConfig `yaml:"file" toml:"file"`
}

func Default() *Config {
	return &Config{
		Level: LevelConfig{
			TileRows:   4,
			TileCols:   4,
			TileHeight: 11,
			TileWidth:  11,
			TileSize:   10,
		},
		Terrain: TerrainConfig{
			MapScale:         8,
			HeightMultiplier: 3,
			CenterRow:        22,
			MaxDistance:      22,
			Height: LayerConfig{
				Waves: []WaveConfig{
					{Seed: 56, Frequency: 1, Amplitude: 1},
					{Seed: 199.36, Frequency: 0.5, Amplitude: 0.5},
				},
				Curve: []KeyConfig{{0, 0}, {0.4, 0}, {1, 1}},
				Types: []TerrainTypeConfig{
					{Name: "water", Threshold: 0.4, Color: "#3264c8", Water: true},
					{Name: "sand", Threshold: 0.45, Color: "#d2c878"},
					{Name: "grass", Threshold: 0.7, Color: "#50a032"},
					{Name: "mountain", Threshold: 0.85, Color: "#785a46"},
					{Name: "snow", Threshold: 1, Color: "#f0f0f0"},
				},
			},
			Heat: LayerConfig{
				Waves: []WaveConfig{{Seed: 12, Frequency: 1, Amplitude: 1}},
				Curve: []KeyConfig{{0, 0}, {0.7, 0}, {1, -0.5}},
				Types: []TerrainTypeConfig{
					{Name: "coldest", Threshold: 0.25, Color: "#00ffff"},
					{Name: "cold", Threshold: 0.5, Color: "#64b4ff"},
					{Name: "hot", Threshold: 0.75, Color: "#ffb400"},
					{Name: "hottest", Threshold: 1, Color: "#ff3200"},
				},
			},
			Moisture: LayerConfig{
				Waves: []WaveConfig{{Seed: 731, Frequency: 1, Amplitude: 1}},
				Curve: []KeyConfig{{0, 0}, {0.5, 0}, {1, 0.3}},
				Types: []TerrainTypeConfig{
					{Name: "dry", Threshold: 0.25, Color: "#ffdc8c"},
					{Name: "damp", Threshold: 0.5, Color: "#b4dc64"},
					{Name: "wet", Threshold: 0.75, Color: "#3cb4b4"},
					{Name: "wettest", Threshold: 1, Color: "#0050c8"},
				},
			},
			Biomes: []BiomeConfig{
				{Name: "tundra", Color: "#c8dcdc"},
				{Name: "boreal", Color: "#3c6446"},
				{Name: "grassland", Color: "#a0c850"},
				{Name: "desert", Color: "#e6d28c"},
				{Name: "forest", Color: "#288c28"},
				{Name: "savanna", Color: "#bebe50"},
				{Name: "rainforest", Color: "#146e1e"},
			},
			BiomeTable: [][]string{
				{"tundra", "tundra", "grassland", "desert"},
				{"tundra", "boreal", "grassland", "desert"},
				{"tundra", "boreal", "forest", "savanna"},
				{"tundra", "boreal", "forest", "rainforest"},
			},
		},
		Noise: NoiseConfig{
			Backend: "perlin",
		},
		River: RiverConfig{
			Count:           4,
			HeightThreshold: 0.6,
			Color:           "#1e90ff",
		},
		Vegetation: VegetationConfig{
			Scale: 1.7,
			Waves: []WaveConfig{
				{Seed: 100, Frequency: 1.3, Amplitude: 1},
				{Seed: 37.5, Frequency: 2.9, Amplitude: 0.4},
			},
			Radius:  []int{5, 2, 4, 6, 1, 4, 1},
			Prefabs: []string{"tundra_shrub", "spruce", "grass_tree", "cactus", "oak", "acacia", "palm"},
		},
		Output: OutputConfig{
			Snapshot:   "out.json",
			Image:      "out.png",
			Mode:       "biome",
			ImageScale: 4,
		},
		Cloud: cloud.Config{
			CacheSeconds:  300,
			RetentionDays: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"flag"
	"github.com/SoftbearStudios/biomegen/generator"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/terrain/noise"
	"github.com/SoftbearStudios/biomegen/vegetation"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal("default config invalid:", err)
	}

	generatorConfig, err := cfg.GeneratorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if generatorConfig.TileRows != 4 || generatorConfig.TileWidth != 11 {
		t.Error("unexpected level", generatorConfig.TileRows, generatorConfig.TileWidth)
	}

	classifier := generatorConfig.Classifier
	if !classifier.Height.Types[0].Water() {
		t.Error("first height type should be water")
	}
	if got := classifier.Biomes.Count(); got != len(cfg.Terrain.Biomes) {
		t.Error("biome count expected", len(cfg.Terrain.Biomes), "got", got)
	}
	if b := classifier.Biomes[3][3]; b.Name != "rainforest" || b.Index != 6 {
		t.Error("wettest hottest expected rainforest (6) got", b.Name, b.Index)
	}
	for i, typ := range classifier.Heat.Types {
		if typ.Index != i {
			t.Error("heat type", typ.Name, "index expected", i, "got", typ.Index)
		}
	}

	if c := generatorConfig.River.Color; c.R != 0x1e || c.G != 0x90 || c.B != 0xff || c.A != 255 {
		t.Error("unexpected river color", c)
	}
	if mode, err := cfg.VisualizationMode(); err != nil || mode != terrain.VisualizeBiome {
		t.Error("expected biome mode got", mode, err)
	}
}

// The default level has a varied density field, so trees are spread out rather than on
// every land cell.
func TestDefault_Vegetation(t *testing.T) {
	generatorConfig, err := Default().GeneratorConfig()
	if err != nil {
		t.Fatal(err)
	}

	for _, seed := range []int64{1, 42, 12345} {
		source := noise.NewPerlin(seed)
		result, err := generator.New(generatorConfig, source, nil, seed).Generate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		data := result.Level

		density := vegetation.New(source, generatorConfig.Vegetation).Density(data)
		distinct := make(map[float32]struct{})
		for _, v := range density.Data {
			distinct[v] = struct{}{}
		}
		if len(distinct) < data.Cols() {
			t.Error("seed", seed, "expected varied density got", len(distinct), "distinct values")
		}

		land := 0
		for row := 0; row < data.Rows(); row++ {
			for col := 0; col < data.Cols(); col++ {
				if !data.Terrain(level.Coord{Row: row, Col: col}).Water() {
					land++
				}
			}
		}
		if land == 0 {
			t.Fatal("seed", seed, "expected some land")
		}
		if trees := len(result.Vegetation); trees == 0 || trees >= land {
			t.Error("seed", seed, "expected fewer trees than", land, "land cells got", trees)
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "biomegen.yaml", `
level:
  tile_rows: 2
river:
  count: 7
logging:
  file:
    path: /var/log/biomegen.log
    max_backups: 9
terrain:
  height:
    types:
      - {name: sea, threshold: 0.5, color: "#0000ff", water: true}
      - {name: land, threshold: 1, color: "#00ff00"}
`)

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.Level.TileRows != 2 || cfg.Level.TileCols != 4 {
		t.Error("expected 2x4 tiles got", cfg.Level.TileRows, cfg.Level.TileCols)
	}
	if cfg.River.Count != 7 || cfg.River.HeightThreshold != 0.6 {
		t.Error("unexpected river", cfg.River)
	}
	if f := cfg.Logging.File; f.Path != "/var/log/biomegen.log" || f.MaxBackups != 9 || f.MaxSizeMB != 50 || !f.Compress {
		t.Error("unexpected log file config", f)
	}
	if n := len(cfg.Terrain.Height.Types); n != 2 {
		t.Fatal("expected height types to be replaced, got", n)
	}
	if len(cfg.Terrain.Height.Waves) != 2 {
		t.Error("height waves should keep their defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "biomegen.toml", `
[level]
tile_cols = 3
tile_size = 20.5

[noise]
backend = "simplex"
seed = 42

[[vegetation.waves]]
seed = 7
frequency = 2
amplitude = 0.5

[logging]
level = "warn"
`)

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.Level.TileCols != 3 || cfg.Level.TileRows != 4 || cfg.Level.TileSize != 20.5 {
		t.Error("unexpected level", cfg.Level)
	}
	if cfg.Noise.Backend != "simplex" || cfg.Noise.Seed != 42 {
		t.Error("unexpected noise", cfg.Noise)
	}
	if len(cfg.Vegetation.Waves) != 1 || cfg.Vegetation.Waves[0] != (WaveConfig{Seed: 7, Frequency: 2, Amplitude: 0.5}) {
		t.Error("unexpected vegetation waves", cfg.Vegetation.Waves)
	}
	if cfg.Logging.Level != "warn" {
		t.Error("expected warn got", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	if err := LoadFile(cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := LoadFile(cfg, writeFile(t, "bad.toml", "[level\n")); err == nil {
		t.Error("expected error for bad toml")
	}
	if err := LoadFile(cfg, writeFile(t, "bad.yaml", "level: [1, 2")); err == nil {
		t.Error("expected error for bad yaml")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Noise.Seed = 99
	cfg.Vegetation.Prefabs[0] = "birch"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded := &Config{}
	if err := LoadFile(loaded, path); err != nil {
		t.Fatal(err)
	}
	if loaded.Noise.Seed != 99 || loaded.Vegetation.Prefabs[0] != "birch" {
		t.Error("unexpected loaded config", loaded.Noise, loaded.Vegetation.Prefabs)
	}
	if len(loaded.Terrain.BiomeTable) != 4 || loaded.Terrain.Height.Types[0].Water != true {
		t.Error("terrain not saved")
	}
	if err := loaded.Validate(); err != nil {
		t.Error(err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		mutate func(cfg *Config)
		cause  error
	}{
		{"no tiles", "level", func(cfg *Config) { cfg.Level.TileRows = 0 }, nil},
		{"no vertices", "level", func(cfg *Config) { cfg.Level.TileWidth = -1 }, nil},
		{"tile size", "level.tile_size", func(cfg *Config) { cfg.Level.TileSize = 0 }, nil},
		{"map scale", "terrain.map_scale", func(cfg *Config) { cfg.Terrain.MapScale = 0 }, nil},
		{"empty table", "terrain", func(cfg *Config) { cfg.Terrain.Heat.Types = nil }, terrain.ErrEmptyTable},
		{"unsorted table", "terrain", func(cfg *Config) { cfg.Terrain.Moisture.Types[0].Threshold = 0.9 }, terrain.ErrUnsortedTable},
		{"biome table", "terrain", func(cfg *Config) { cfg.Terrain.BiomeTable = cfg.Terrain.BiomeTable[:3] }, terrain.ErrBiomeTableSize},
		{"unknown biome", "terrain", func(cfg *Config) { cfg.Terrain.BiomeTable[0][0] = "swamp" }, nil},
		{"bad color", "terrain", func(cfg *Config) { cfg.Terrain.Height.Types[1].Color = "sand" }, nil},
		{"no water", "terrain.height.types", func(cfg *Config) { cfg.Terrain.Height.Types[0].Water = false }, nil},
		{"short radius", "vegetation.radius", func(cfg *Config) { cfg.Vegetation.Radius = cfg.Vegetation.Radius[:2] }, nil},
		{"short prefabs", "vegetation.prefabs", func(cfg *Config) { cfg.Vegetation.Prefabs = nil }, nil},
		{"negative radius", "vegetation.radius[1]", func(cfg *Config) { cfg.Vegetation.Radius[1] = -1 }, nil},
		{"vegetation scale", "vegetation.scale", func(cfg *Config) { cfg.Vegetation.Scale = 0 }, nil},
		{"river count", "river.count", func(cfg *Config) { cfg.River.Count = -1 }, nil},
		{"river color", "river", func(cfg *Config) { cfg.River.Color = "#12" }, nil},
		{"backend", "noise.backend", func(cfg *Config) { cfg.Noise.Backend = "value" }, nil},
		{"mode", "output.mode", func(cfg *Config) { cfg.Output.Mode = "rivers" }, nil},
		{"image scale", "output.image_scale", func(cfg *Config) { cfg.Output.ImageScale = -2 }, nil},
		{"log level", "logging.level", func(cfg *Config) { cfg.Logging.Level = "trace" }, nil},
		{"log rotation", "logging.file", func(cfg *Config) { cfg.Logging.File.MaxAgeDays = -1 }, nil},
		{"cloud", "cloud", func(cfg *Config) { cfg.Cloud.Enabled = true }, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatal("expected ErrInvalid got", err)
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != test.field {
				t.Error("field expected", test.field, "got", err)
			}
			if test.cause != nil && !errors.Is(err, test.cause) {
				t.Error("cause expected", test.cause, "got", err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	for name, value := range map[string]string{"rivers": "0", "backend": "simplex", "debug": "true", "out": "level.json"} {
		if err := flag.Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	cfg := Default()
	cfg.Noise.Seed = 5
	applyFlags(cfg)

	if cfg.River.Count != 0 {
		t.Error("explicit -rivers 0 should override, got", cfg.River.Count)
	}
	if cfg.Noise.Seed != 5 {
		t.Error("unset -seed should not override, got", cfg.Noise.Seed)
	}
	if cfg.Noise.Backend != "simplex" || cfg.Logging.Level != "debug" || cfg.Output.Snapshot != "level.json" {
		t.Error("unexpected config", cfg.Noise, cfg.Logging, cfg.Output)
	}
	if cfg.Output.Image != "out.png" {
		t.Error("image should keep its default, got", cfg.Output.Image)
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "fmt"

// Layer configures one of the height, heat or moisture fields.
type Layer struct {
	Waves []Wave
	Curve Curve
	Types []TerrainType
}

// ClassifierConfig holds everything needed to classify a tile.
type ClassifierConfig struct {
	Height   Layer
	Heat     Layer
	Moisture Layer
	Biomes   BiomeTable

	// MapScale divides sample coordinates before the waves are applied.
	MapScale float32
	// HeightMultiplier scales the curved height into Elevation.
	HeightMultiplier float32

	// CenterRow is the global row with the lowest latitude value.
	CenterRow float32
	// MaxDistance is the row distance from CenterRow at which latitude reaches 1.
	MaxDistance float32
}

func (config *ClassifierConfig) Validate() error {
	layers := [...]struct {
		name  string
		layer *Layer
	}{
		{"height", &config.Height},
		{"heat", &config.Heat},
		{"moisture", &config.Moisture},
	}
	for _, l := range layers {
		if err := ValidateTable(l.layer.Types); err != nil {
			return fmt.Errorf("%s: %w", l.name, err)
		}
		if err := l.layer.Curve.Validate(); err != nil {
			return fmt.Errorf("%s: %w", l.name, err)
		}
	}
	return config.Biomes.Validate(len(config.Moisture.Types), len(config.Heat.Types))
}

// Classifier turns noise fields into TileData.
type Classifier struct {
	source Source
	config ClassifierConfig
}

func NewClassifier(source Source, config ClassifierConfig) *Classifier {
	return &Classifier{
		source: source,
		config: config,
	}
}

func (classifier *Classifier) Config() *ClassifierConfig {
	return &classifier.config
}

// Classify generates the tile at (tileRow, tileCol) of a level made of rows x cols vertex tiles.
//
// Local indices run opposite to global ones (local = size - global%size - 1) so the noise
// offsets are negated tile extents, which keeps every field continuous across tile borders.
func (classifier *Classifier) Classify(tileRow, tileCol, rows, cols int) *TileData {
	config := &classifier.config
	source := classifier.source

	offsetX := -float32(tileCol*cols + cols - 1)
	offsetZ := -float32(tileRow*rows + rows - 1)

	tile := NewTileData(rows, cols)
	tile.Height = source.Noise(rows, cols, config.MapScale, offsetX, offsetZ, config.Height.Waves)

	latitude := source.Uniform(rows, cols, config.CenterRow, config.MaxDistance, float32(tileRow*rows))
	heat := source.Noise(rows, cols, config.MapScale, offsetX, offsetZ, config.Heat.Waves)
	moisture := source.Noise(rows, cols, config.MapScale, offsetX, offsetZ, config.Moisture.Waves)

	for i, h := range tile.Height.Data {
		heat.Data[i] = latitude.Data[i]*heat.Data[i] + config.Heat.Curve.Evaluate(h)*h
		moisture.Data[i] -= config.Moisture.Curve.Evaluate(h) * h
		tile.Elevation.Data[i] = config.Height.Curve.Evaluate(h) * config.HeightMultiplier
	}
	tile.Heat = heat
	tile.Moisture = moisture

	tile.Layers[VisualizeHeight] = paintLayer(tile.Height, config.Height.Types, tile.HeightClass)
	tile.Layers[VisualizeHeat] = paintLayer(tile.Heat, config.Heat.Types, tile.HeatClass)
	tile.Layers[VisualizeMoisture] = paintLayer(tile.Moisture, config.Moisture.Types, tile.MoistureClass)
	paintBiomes(tile, config.Biomes)

	return tile
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "fmt"

// VisualizationMode selects which texture of a tile is shown.
type VisualizationMode uint8

const (
	VisualizeBiome VisualizationMode = iota
	VisualizeHeight
	VisualizeHeat
	VisualizeMoisture
)

var visualizationModeNames = [...]string{
	VisualizeBiome:    "biome",
	VisualizeHeight:   "height",
	VisualizeHeat:     "heat",
	VisualizeMoisture: "moisture",
}

func (mode VisualizationMode) String() string {
	if int(mode) < len(visualizationModeNames) {
		return visualizationModeNames[mode]
	}
	return fmt.Sprintf("VisualizationMode(%d)", mode)
}

func ParseVisualizationMode(s string) (VisualizationMode, error) {
	if s == "" {
		return VisualizeBiome, nil
	}
	for i, name := range visualizationModeNames {
		if name == s {
			return VisualizationMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown visualization mode %q", s)
}

// bandShade is how far a cell at the top of its band moves toward the next band's color.
const bandShade = 0.5

// paintLayer classifies field into classes and writes the terrain colors to a new buffer.
// Colors are shaded within each band toward the color of the band above.
func paintLayer(field Field, table []TerrainType, classes []*TerrainType) *ColorBuffer {
	buffer := NewColorBuffer(field.Rows, field.Cols)
	for i, value := range field.Data {
		terrainType := Classify(value, table)
		classes[i] = terrainType
		buffer.Pix[i] = shade(value, table, terrainType.Index).Color()
	}
	return buffer
}

// shade returns the color of table[index] blended toward table[index+1] by the position of
// value inside the band. The last band is flat.
func shade(value float32, table []TerrainType, index int) ColorVec {
	terrainType := &table[index]
	if index+1 >= len(table) {
		return terrainType.Color
	}

	var lower float32
	if index > 0 {
		lower = table[index-1].Threshold
	}
	width := terrainType.Threshold - lower
	if width <= 0 {
		return terrainType.Color
	}
	return terrainType.Color.Lerp(table[index+1].Color, clamp((value-lower)/width)*bandShade)
}

// paintBiomes assigns biomes to land cells and writes the biome texture.
func paintBiomes(tile *TileData, biomes BiomeTable) {
	water := WaterColor.Color()
	for i, heightClass := range tile.HeightClass {
		if heightClass.Water() {
			tile.Biomes[i] = nil
			tile.Surface.Pix[i] = water
			continue
		}

		biome := biomes.Lookup(tile.MoistureClass[i], tile.HeatClass[i])
		tile.Biomes[i] = biome
		tile.Surface.Pix[i] = biome.Color.Color()
	}
}

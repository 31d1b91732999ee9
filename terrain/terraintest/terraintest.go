// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terraintest provides deterministic terrain sources and tables for tests.
package terraintest

import "github.com/SoftbearStudios/biomegen/terrain"

// Func is called with the global vertex a sample lands on, assuming the negated tile offsets
// used by terrain.Classifier.
type Func func(waves []terrain.Wave, globalRow, globalCol int) float32

// FuncSource is a terrain.Source whose noise comes from a function of global coordinates.
type FuncSource struct {
	Func     Func
	Latitude float32 // Uniform returns this everywhere.
}

func (source FuncSource) Noise(rows, cols int, scale, offsetX, offsetZ float32, waves []terrain.Wave) terrain.Field {
	field := terrain.NewField(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			globalRow := -int(float32(row) + offsetZ)
			globalCol := -int(float32(col) + offsetX)
			field.Set(row, col, source.Func(waves, globalRow, globalCol))
		}
	}
	return field
}

func (source FuncSource) Uniform(rows, cols int, _, _, _ float32) terrain.Field {
	field := terrain.NewField(rows, cols)
	for i := range field.Data {
		field.Data[i] = source.Latitude
	}
	return field
}

// Const returns the same value for every sample.
func Const(v float32) Func {
	return func([]terrain.Wave, int, int) float32 {
		return v
	}
}

// Seed identifies which layer is being sampled by the seed of its first wave.
func Seed(waves []terrain.Wave) float32 {
	if len(waves) == 0 {
		return 0
	}
	return waves[0].Seed
}

// Seeds of the waves in Config, one per layer.
const (
	HeightSeed   = 1
	HeatSeed     = 2
	MoistureSeed = 3
)

// HeightTable has water below 0.3, sand below 0.4 and grass above.
func HeightTable() []terrain.TerrainType {
	return []terrain.TerrainType{
		{Name: "water", Threshold: 0.3, Color: terrain.RGB(0, 0, 200), Index: 0, Role: terrain.RoleWater},
		{Name: "sand", Threshold: 0.4, Color: terrain.RGB(220, 200, 120), Index: 1},
		{Name: "grass", Threshold: 1, Color: terrain.RGB(40, 160, 40), Index: 2},
	}
}

// TwoClassTable splits at 0.5.
func TwoClassTable(low, high string) []terrain.TerrainType {
	return []terrain.TerrainType{
		{Name: low, Threshold: 0.5, Color: terrain.Gray(64), Index: 0},
		{Name: high, Threshold: 1, Color: terrain.Gray(192), Index: 1},
	}
}

// Biomes is a 2x2 table for TwoClassTable moisture and heat layers.
func Biomes() terrain.BiomeTable {
	return terrain.BiomeTable{
		{
			{Name: "tundra", Color: terrain.RGB(200, 200, 255), Index: 0},
			{Name: "desert", Color: terrain.RGB(240, 220, 130), Index: 1},
		},
		{
			{Name: "taiga", Color: terrain.RGB(30, 90, 60), Index: 2},
			{Name: "jungle", Color: terrain.RGB(20, 140, 20), Index: 3},
		},
	}
}

// Config returns a valid classifier config using the tables above.
// Curves are flat zero so heat and moisture equal their noise (latitude 1 aside).
func Config() terrain.ClassifierConfig {
	flat := terrain.Curve{{Time: 0, Value: 0}, {Time: 1, Value: 0}}
	return terrain.ClassifierConfig{
		Height: terrain.Layer{
			Waves: []terrain.Wave{{Seed: HeightSeed, Frequency: 1, Amplitude: 1}},
			Curve: terrain.LinearCurve(),
			Types: HeightTable(),
		},
		Heat: terrain.Layer{
			Waves: []terrain.Wave{{Seed: HeatSeed, Frequency: 1, Amplitude: 1}},
			Curve: flat,
			Types: TwoClassTable("cold", "hot"),
		},
		Moisture: terrain.Layer{
			Waves: []terrain.Wave{{Seed: MoistureSeed, Frequency: 1, Amplitude: 1}},
			Curve: flat,
			Types: TwoClassTable("dry", "wet"),
		},
		Biomes:           Biomes(),
		MapScale:         1,
		HeightMultiplier: 10,
		CenterRow:        0,
		MaxDistance:      1,
	}
}

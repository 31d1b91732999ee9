// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terrain classifies noise fields into terrain types and biomes, one tile at a time.
package terrain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable     = errors.New("terrain: empty terrain type table")
	ErrUnsortedTable  = errors.New("terrain: terrain type thresholds not ascending")
	ErrTableIndex     = errors.New("terrain: terrain type index does not match position")
	ErrBiomeTableSize = errors.New("terrain: biome table does not match heat/moisture classes")
)

// Role tags terrain types that other stages treat specially.
type Role uint8

const (
	RoleLand Role = iota
	RoleWater
)

func (role Role) String() string {
	switch role {
	case RoleWater:
		return "water"
	default:
		return "land"
	}
}

// TerrainType is one bucket of a layer's threshold table.
type TerrainType struct {
	Name      string
	Threshold float32 // Values strictly below Threshold fall into this bucket.
	Color     ColorVec
	Index     int
	Role      Role
}

// Water returns true if the terrain type has the water role.
func (terrainType *TerrainType) Water() bool {
	return terrainType != nil && terrainType.Role == RoleWater
}

// Biome is picked from a BiomeTable by moisture and heat class.
type Biome struct {
	Name  string
	Color ColorVec
	Index int
}

// BiomeTable is indexed [moisture index][heat index].
type BiomeTable [][]Biome

// Lookup returns the biome for a moisture and heat class.
func (table BiomeTable) Lookup(moisture, heat *TerrainType) *Biome {
	return &table[moisture.Index][heat.Index]
}

// Count is the number of distinct biome indices in the table.
func (table BiomeTable) Count() int {
	count := 0
	for _, row := range table {
		for _, biome := range row {
			if biome.Index+1 > count {
				count = biome.Index + 1
			}
		}
	}
	return count
}

// Validate checks that the table is sized moistureCount x heatCount.
func (table BiomeTable) Validate(moistureCount, heatCount int) error {
	if len(table) != moistureCount {
		return fmt.Errorf("%w: %d moisture rows, want %d", ErrBiomeTableSize, len(table), moistureCount)
	}
	for i, row := range table {
		if len(row) != heatCount {
			return fmt.Errorf("%w: moisture row %d has %d heat entries, want %d", ErrBiomeTableSize, i, len(row), heatCount)
		}
	}
	return nil
}

// Classify returns the first terrain type whose threshold exceeds value.
// The last entry catches everything else.
func Classify(value float32, table []TerrainType) *TerrainType {
	for i := range table {
		if value < table[i].Threshold {
			return &table[i]
		}
	}
	return &table[len(table)-1]
}

// ValidateTable checks the invariants Classify relies on.
func ValidateTable(table []TerrainType) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}
	for i := range table {
		if table[i].Index != i {
			return fmt.Errorf("%w: %q has index %d at position %d", ErrTableIndex, table[i].Name, table[i].Index, i)
		}
		if i > 0 && table[i].Threshold < table[i-1].Threshold {
			return fmt.Errorf("%w: %q (%g) after %q (%g)", ErrUnsortedTable,
				table[i].Name, table[i].Threshold, table[i-1].Name, table[i-1].Threshold)
		}
	}
	return nil
}

// Wave is one octave passed through to a Source.
type Wave struct {
	Seed      float32
	Frequency float32
	Amplitude float32
}

// Source generates scalar fields.
type Source interface {
	// Noise sums waves over a rows x cols grid sampled at ((col+offsetX)/scale, (row+offsetZ)/scale).
	Noise(rows, cols int, scale, offsetX, offsetZ float32, waves []Wave) Field
	// Uniform returns a latitude band: distance of each row from centerRow over maxDistance.
	Uniform(rows, cols int, centerRow, maxDistance, rowOffset float32) Field
}

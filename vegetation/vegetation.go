// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vegetation places trees at local maxima of a density field.
package vegetation

import (
	"context"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
	"runtime"
)

var ErrUnknownBiome = errors.New("vegetation: no radius or prefab for biome")

type Config struct {
	Waves []terrain.Wave
	Scale float32
	// Radius and Prefabs are indexed by biome index.
	Radius  []int
	Prefabs []string
}

// Placement is one tree.
type Placement struct {
	Coord    level.Coord
	Biome    int
	Prefab   string
	Position mgl32.Vec3
}

type Placer struct {
	source terrain.Source
	config Config
}

func New(source terrain.Source, config Config) *Placer {
	return &Placer{
		source: source,
		config: config,
	}
}

// Density samples the level-wide density field, indexed by global coordinates.
func (placer *Placer) Density(data *level.LevelData) terrain.Field {
	return placer.source.Noise(data.Rows(), data.Cols(), placer.config.Scale, 0, 0, placer.config.Waves)
}

// Place generates the density field and places trees on it. See PlaceField.
func (placer *Placer) Place(ctx context.Context, data *level.LevelData, spacing float32, scene level.Scene) ([]Placement, error) {
	return placer.PlaceField(ctx, data, placer.Density(data), spacing, scene)
}

// PlaceField puts a tree on every land cell whose density equals the maximum of the square
// neighborhood around it, sized by the cell's biome. Rows are evaluated in parallel but trees are
// spawned in row-major order on the calling goroutine.
func (placer *Placer) PlaceField(ctx context.Context, data *level.LevelData, density terrain.Field, spacing float32, scene level.Scene) ([]Placement, error) {
	rows := make([][]Placement, data.Rows())

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for row := range rows {
		row := row
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			placements, err := placer.placeRow(data, density, row, spacing)
			rows[row] = placements
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var placements []Placement
	for _, row := range rows {
		for _, placement := range row {
			scene.SpawnVegetation(placement.Position, placement.Biome, placement.Prefab)
			placements = append(placements, placement)
		}
	}

	return placements, nil
}

func (placer *Placer) placeRow(data *level.LevelData, density terrain.Field, row int, spacing float32) ([]Placement, error) {
	var placements []Placement

	for col := 0; col < data.Cols(); col++ {
		coord := level.Coord{Row: row, Col: col}
		if data.Terrain(coord).Water() {
			continue
		}

		biome := data.Biome(coord)
		if biome == nil || biome.Index >= len(placer.config.Radius) || biome.Index >= len(placer.config.Prefabs) {
			return nil, fmt.Errorf("%w at %s", ErrUnknownBiome, coord)
		}

		radius := placer.config.Radius[biome.Index]
		if density.At(row, col) != localMax(density, row, col, radius) {
			continue
		}

		placements = append(placements, Placement{
			Coord:    coord,
			Biome:    biome.Index,
			Prefab:   placer.config.Prefabs[biome.Index],
			Position: mgl32.Vec3{float32(col) * spacing, data.Elevation(coord), float32(row) * spacing},
		})
	}

	return placements, nil
}

// localMax is the maximum of the square of the given radius around (row, col), clamped to the field.
func localMax(field terrain.Field, row, col, radius int) float32 {
	rowBegin := max(0, row-radius)
	rowEnd := min(field.Rows-1, row+radius)
	colBegin := max(0, col-radius)
	colEnd := min(field.Cols-1, col+radius)

	m := field.At(row, col)
	for r := rowBegin; r <= rowEnd; r++ {
		for c := colBegin; c <= colEnd; c++ {
			if v := field.At(r, c); v > m {
				m = v
			}
		}
	}
	return m
}

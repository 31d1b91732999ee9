// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generator runs one generation pass: tiles, then rivers, then vegetation.
package generator

import (
	"context"
	"fmt"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/logger"
	"github.com/SoftbearStudios/biomegen/river"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/vegetation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"math/rand"
	"time"
)

type Config struct {
	TileRows int
	TileCols int
	// Vertices per tile.
	TileHeight int
	TileWidth  int
	// TileSize is the footprint of a tile in world units.
	TileSize float32

	Classifier terrain.ClassifierConfig
	River      river.Config
	Vegetation vegetation.Config
}

// Spacing is the world distance between adjacent vertices.
func (config *Config) Spacing() float32 {
	return config.TileSize / float32(config.TileWidth)
}

// Result is everything one pass produced.
type Result struct {
	ID         uuid.UUID
	Seed       int64
	Level      *level.LevelData
	Rivers     []river.River
	Vegetation []vegetation.Placement
}

type Generator struct {
	config Config
	source terrain.Source
	scene  level.Scene
	seed   int64
}

// New creates a Generator. Noise is taken from source. River origins are drawn from a
// random source seeded with seed.
func New(config Config, source terrain.Source, scene level.Scene, seed int64) *Generator {
	if scene == nil {
		scene = level.NopScene{}
	}
	return &Generator{
		config: config,
		source: source,
		scene:  scene,
		seed:   seed,
	}
}

// Generate runs the whole pass. ctx is checked between tiles and between stages.
func (generator *Generator) Generate(ctx context.Context) (*Result, error) {
	config := &generator.config
	start := time.Now()

	result := &Result{
		ID:   uuid.New(),
		Seed: generator.seed,
	}
	log := logger.Log.With(zap.Stringer("id", result.ID), zap.Int64("seed", result.Seed))

	data, err := generator.assemble(ctx)
	if err != nil {
		return nil, err
	}
	result.Level = data
	log.Debug("tiles classified", zap.Int("tiles", config.TileRows*config.TileCols), zap.Duration("elapsed", time.Since(start)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	carver := river.New(config.River, rand.New(rand.NewSource(generator.seed)))
	result.Rivers = carver.Carve(data)
	for i := range result.Rivers {
		r := &result.Rivers[i]
		if err := r.Err(); err != nil {
			log.Warn("river incomplete", zap.Int("river", i), zap.Stringer("status", r.Status), zap.Error(err))
		} else {
			log.Debug("river carved", zap.Int("river", i), zap.Stringer("origin", r.Origin), zap.Int("length", len(r.Path)))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	placer := vegetation.New(generator.source, config.Vegetation)
	result.Vegetation, err = placer.Place(ctx, data, config.Spacing(), generator.scene)
	if err != nil {
		return nil, fmt.Errorf("vegetation: %w", err)
	}

	log.Info("level generated",
		zap.Int("rows", data.Rows()),
		zap.Int("cols", data.Cols()),
		zap.Int("rivers", len(result.Rivers)),
		zap.Int("trees", len(result.Vegetation)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// assemble spawns and classifies every tile.
func (generator *Generator) assemble(ctx context.Context) (*level.LevelData, error) {
	config := &generator.config
	classifier := terrain.NewClassifier(generator.source, config.Classifier)
	data := level.New(config.TileRows, config.TileCols, config.TileHeight, config.TileWidth)

	half := config.TileSize / 2
	for tileRow := 0; tileRow < config.TileRows; tileRow++ {
		for tileCol := 0; tileCol < config.TileCols; tileCol++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			position := mgl32.Vec3{float32(tileCol)*config.TileSize + half, 0, float32(tileRow)*config.TileSize + half}
			generator.scene.SpawnTile(position, tileRow, tileCol)

			tile := classifier.Classify(tileRow, tileCol, config.TileHeight, config.TileWidth)
			data.SetTile(tileRow, tileCol, tile)
		}
	}

	return data, data.Complete()
}

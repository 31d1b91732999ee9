// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package level

import "github.com/go-gl/mathgl/mgl32"

// Scene materializes generated objects in a host environment.
type Scene interface {
	// SpawnTile is called once per tile with the tile's world position.
	SpawnTile(position mgl32.Vec3, tileRow, tileCol int)
	// SpawnVegetation is called once per placed tree, keyed by biome index.
	SpawnVegetation(position mgl32.Vec3, biome int, prefab string)
}

// NopScene discards everything.
type NopScene struct{}

func (NopScene) SpawnTile(mgl32.Vec3, int, int) {}

func (NopScene) SpawnVegetation(mgl32.Vec3, int, string) {}

type TileSpawn struct {
	Position mgl32.Vec3
	TileRow  int
	TileCol  int
}

type VegetationSpawn struct {
	Position mgl32.Vec3
	Biome    int
	Prefab   string
}

// Recorder is a Scene that remembers every call in order.
type Recorder struct {
	Tiles      []TileSpawn
	Vegetation []VegetationSpawn
}

func (recorder *Recorder) SpawnTile(position mgl32.Vec3, tileRow, tileCol int) {
	recorder.Tiles = append(recorder.Tiles, TileSpawn{Position: position, TileRow: tileRow, TileCol: tileCol})
}

func (recorder *Recorder) SpawnVegetation(position mgl32.Vec3, biome int, prefab string) {
	recorder.Vegetation = append(recorder.Vegetation, VegetationSpawn{Position: position, Biome: biome, Prefab: prefab})
}

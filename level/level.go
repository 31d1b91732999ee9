// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package level stores classified tiles and translates global vertex indices into them.
package level

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/terrain"
	"image/color"
)

var ErrMissingTile = errors.New("level: tile not generated")

// Coord is a global vertex index.
type Coord struct {
	Row int
	Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

// TileCoordinate locates a global vertex inside a tile.
type TileCoordinate struct {
	TileRow  int
	TileCol  int
	LocalRow int
	LocalCol int
}

// LevelData owns every tile of one generation pass, stored row-major by tile index.
type LevelData struct {
	tileRows   int
	tileCols   int
	tileHeight int // Vertices per tile along rows (H)
	tileWidth  int // Vertices per tile along columns (W)
	tiles      []*terrain.TileData
}

// New allocates a level of tileRows x tileCols tiles, each tileHeight x tileWidth vertices.
func New(tileRows, tileCols, tileHeight, tileWidth int) *LevelData {
	return &LevelData{
		tileRows:   tileRows,
		tileCols:   tileCols,
		tileHeight: tileHeight,
		tileWidth:  tileWidth,
		tiles:      make([]*terrain.TileData, tileRows*tileCols),
	}
}

func (level *LevelData) TileRows() int {
	return level.tileRows
}

func (level *LevelData) TileCols() int {
	return level.tileCols
}

func (level *LevelData) TileHeight() int {
	return level.tileHeight
}

func (level *LevelData) TileWidth() int {
	return level.tileWidth
}

// Rows is the level height in vertices.
func (level *LevelData) Rows() int {
	return level.tileRows * level.tileHeight
}

// Cols is the level width in vertices.
func (level *LevelData) Cols() int {
	return level.tileCols * level.tileWidth
}

func (level *LevelData) SetTile(tileRow, tileCol int, tile *terrain.TileData) {
	level.tiles[tileRow*level.tileCols+tileCol] = tile
}

func (level *LevelData) Tile(tileRow, tileCol int) *terrain.TileData {
	return level.tiles[tileRow*level.tileCols+tileCol]
}

// Complete returns an error if any tile is missing.
func (level *LevelData) Complete() error {
	for i, tile := range level.tiles {
		if tile == nil {
			return fmt.Errorf("%w: tile (%d, %d)", ErrMissingTile, i/level.tileCols, i%level.tileCols)
		}
	}
	return nil
}

// InBounds returns true if coord is a vertex of the level.
func (level *LevelData) InBounds(coord Coord) bool {
	return coord.Row >= 0 && coord.Col >= 0 && coord.Row < level.Rows() && coord.Col < level.Cols()
}

// TileCoordinate translates a global vertex index into a tile and a local index.
// Local indices are inverted (size - global%size - 1), the orientation in which tiles are sampled.
func (level *LevelData) TileCoordinate(coord Coord) TileCoordinate {
	h, w := level.tileHeight, level.tileWidth
	return TileCoordinate{
		TileRow:  coord.Row / h,
		TileCol:  coord.Col / w,
		LocalRow: h - coord.Row%h - 1,
		LocalCol: w - coord.Col%w - 1,
	}
}

// GlobalCoord is the inverse of TileCoordinate.
func (level *LevelData) GlobalCoord(tc TileCoordinate) Coord {
	h, w := level.tileHeight, level.tileWidth
	return Coord{
		Row: tc.TileRow*h + h - tc.LocalRow - 1,
		Col: tc.TileCol*w + w - tc.LocalCol - 1,
	}
}

// Cell returns the tile containing coord and the local index into it.
func (level *LevelData) Cell(coord Coord) (tile *terrain.TileData, row, col int) {
	tc := level.TileCoordinate(coord)
	return level.Tile(tc.TileRow, tc.TileCol), tc.LocalRow, tc.LocalCol
}

// Height is the raw height noise at coord.
func (level *LevelData) Height(coord Coord) float32 {
	tile, row, col := level.Cell(coord)
	return tile.Height.At(row, col)
}

// Terrain is the height class at coord.
func (level *LevelData) Terrain(coord Coord) *terrain.TerrainType {
	tile, row, col := level.Cell(coord)
	return tile.TerrainAt(row, col)
}

// Biome is nil where Terrain is water.
func (level *LevelData) Biome(coord Coord) *terrain.Biome {
	tile, row, col := level.Cell(coord)
	return tile.BiomeAt(row, col)
}

func (level *LevelData) Elevation(coord Coord) float32 {
	tile, row, col := level.Cell(coord)
	return tile.Elevation.At(row, col)
}

// Paint writes c to the surface texture at coord.
func (level *LevelData) Paint(coord Coord, c color.RGBA) {
	tile, row, col := level.Cell(coord)
	tile.Surface.Set(row, col, c)
}

// Neighbors appends the in-bounds axis-aligned neighbors of coord to dst in the order
// north (row - 1), south (row + 1), west (col - 1), east (col + 1).
func (level *LevelData) Neighbors(coord Coord, dst []Coord) []Coord {
	if coord.Row > 0 {
		dst = append(dst, Coord{Row: coord.Row - 1, Col: coord.Col})
	}
	if coord.Row < level.Rows()-1 {
		dst = append(dst, Coord{Row: coord.Row + 1, Col: coord.Col})
	}
	if coord.Col > 0 {
		dst = append(dst, Coord{Row: coord.Row, Col: coord.Col - 1})
	}
	if coord.Col < level.Cols()-1 {
		dst = append(dst, Coord{Row: coord.Row, Col: coord.Col + 1})
	}
	return dst
}

// Field stitches a per-tile field into one level-wide field indexed by global coordinates.
func (level *LevelData) Field(get func(tile *terrain.TileData) terrain.Field) terrain.Field {
	field := terrain.NewField(level.Rows(), level.Cols())
	for row := 0; row < field.Rows; row++ {
		for col := 0; col < field.Cols; col++ {
			tile, r, c := level.Cell(Coord{Row: row, Col: col})
			field.Set(row, col, get(tile).At(r, c))
		}
	}
	return field
}

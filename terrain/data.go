// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"image"
	"image/color"
)

// Field is a row-major grid of scalar samples.
type Field struct {
	Rows int
	Cols int
	Data []float32
}

func NewField(rows, cols int) Field {
	return Field{
		Rows: rows,
		Cols: cols,
		Data: make([]float32, rows*cols),
	}
}

func (field Field) At(row, col int) float32 {
	return field.Data[row*field.Cols+col]
}

func (field Field) Set(row, col int, value float32) {
	field.Data[row*field.Cols+col] = value
}

// ColorBuffer is a paintable row-major texture.
type ColorBuffer struct {
	Rows int
	Cols int
	Pix  []color.RGBA
}

func NewColorBuffer(rows, cols int) *ColorBuffer {
	return &ColorBuffer{
		Rows: rows,
		Cols: cols,
		Pix:  make([]color.RGBA, rows*cols),
	}
}

func (buffer *ColorBuffer) At(row, col int) color.RGBA {
	return buffer.Pix[row*buffer.Cols+col]
}

func (buffer *ColorBuffer) Set(row, col int, c color.RGBA) {
	buffer.Pix[row*buffer.Cols+col] = c
}

// Image copies the buffer into an image with row as y and col as x.
func (buffer *ColorBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Cols, buffer.Rows))
	for row := 0; row < buffer.Rows; row++ {
		for col := 0; col < buffer.Cols; col++ {
			img.SetRGBA(col, row, buffer.At(row, col))
		}
	}
	return img
}

// TileData is everything the classifier derives for one tile.
// Only Surface is modified after classification (rivers paint it).
type TileData struct {
	Height   Field
	Heat     Field
	Moisture Field

	HeightClass   []*TerrainType
	HeatClass     []*TerrainType
	MoistureClass []*TerrainType
	Biomes        []*Biome // nil where HeightClass is water

	// Elevation is the height after the height curve and multiplier, for mesh displacement.
	Elevation Field
	// Surface is the biome texture.
	Surface *ColorBuffer
	// Layers holds the per-layer textures for the other visualization modes.
	Layers map[VisualizationMode]*ColorBuffer
}

// NewTileData allocates an empty tile of rows x cols vertices.
func NewTileData(rows, cols int) *TileData {
	n := rows * cols
	return &TileData{
		Height:        NewField(rows, cols),
		Heat:          NewField(rows, cols),
		Moisture:      NewField(rows, cols),
		HeightClass:   make([]*TerrainType, n),
		HeatClass:     make([]*TerrainType, n),
		MoistureClass: make([]*TerrainType, n),
		Biomes:        make([]*Biome, n),
		Elevation:     NewField(rows, cols),
		Surface:       NewColorBuffer(rows, cols),
		Layers:        make(map[VisualizationMode]*ColorBuffer, 3),
	}
}

func (tile *TileData) Rows() int {
	return tile.Height.Rows
}

func (tile *TileData) Cols() int {
	return tile.Height.Cols
}

func (tile *TileData) TerrainAt(row, col int) *TerrainType {
	return tile.HeightClass[row*tile.Cols()+col]
}

func (tile *TileData) BiomeAt(row, col int) *Biome {
	return tile.Biomes[row*tile.Cols()+col]
}

// Texture returns the buffer shown for a visualization mode.
func (tile *TileData) Texture(mode VisualizationMode) *ColorBuffer {
	if mode == VisualizeBiome {
		return tile.Surface
	}
	if buffer, ok := tile.Layers[mode]; ok {
		return buffer
	}
	return tile.Surface
}

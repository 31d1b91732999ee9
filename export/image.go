// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// LevelImage stitches the textures of every tile into one image, with x as global column
// and y as global row.
func LevelImage(data *level.LevelData, mode terrain.VisualizationMode) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, data.Cols(), data.Rows()))
	for tileRow := 0; tileRow < data.TileRows(); tileRow++ {
		for tileCol := 0; tileCol < data.TileCols(); tileCol++ {
			texture := data.Tile(tileRow, tileCol).Texture(mode).Image()
			bounds := texture.Bounds()
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					coord := data.GlobalCoord(level.TileCoordinate{TileRow: tileRow, TileCol: tileCol, LocalRow: y, LocalCol: x})
					img.SetRGBA(coord.Col, coord.Row, texture.RGBAAt(x, y))
				}
			}
		}
	}
	return img
}

// Scale enlarges img by factor with nearest neighbor sampling so every cell stays a sharp square.
// Factors below 2 return img as is.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	bounds := img.Bounds()
	return resize.Resize(uint(bounds.Dx()*factor), uint(bounds.Dy()*factor), img, resize.NearestNeighbor)
}

// FormatOf guesses an image format from a file name, defaulting to png.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return FormatBMP
	}
	return FormatPNG
}

func WriteImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}

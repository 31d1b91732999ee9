// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"github.com/SoftbearStudios/biomegen/generator"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/river"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/terrain/terraintest"
	"github.com/SoftbearStudios/biomegen/vegetation"
	"golang.org/x/image/bmp"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

var riverColor = color.RGBA{R: 1, G: 2, B: 250, A: 255}

// generate builds a 2x3 tile level of 4x4 tiles whose height rises with the global row.
// Row 0 is water.
func generate(t *testing.T) *generator.Result {
	t.Helper()

	source := terraintest.FuncSource{
		Func: func(waves []terrain.Wave, globalRow, globalCol int) float32 {
			switch terraintest.Seed(waves) {
			case terraintest.HeightSeed:
				if globalRow == 0 {
					return 0
				}
				return 0.4 + float32(globalRow)*0.05
			case terraintest.HeatSeed:
				return 0.9
			case terraintest.MoistureSeed:
				return 0.1
			default:
				// density peaks on a diagonal lattice
				if (globalRow+globalCol)%5 == 0 {
					return 1
				}
				return 0
			}
		},
		Latitude: 1,
	}

	config := generator.Config{
		TileRows:   2,
		TileCols:   3,
		TileHeight: 4,
		TileWidth:  4,
		TileSize:   8,
		Classifier: terraintest.Config(),
		River:      river.Config{Count: 2, HeightThreshold: 0.6, Color: riverColor},
		Vegetation: vegetation.Config{
			Waves:   []terrain.Wave{{Seed: 42, Frequency: 1, Amplitude: 1}},
			Scale:   1,
			Radius:  []int{0, 0, 0, 0},
			Prefabs: []string{"a", "b", "c", "d"},
		},
	}

	result, err := generator.New(config, source, nil, 3).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSnapshot(t *testing.T) {
	result := generate(t)
	snapshot := NewSnapshot(result)

	if snapshot.Water != result.Level.Cols() {
		t.Error("expected one row of water,", result.Level.Cols(), "cells, got", snapshot.Water)
	}
	land := result.Level.Rows()*result.Level.Cols() - snapshot.Water
	if snapshot.Biomes["desert"] != land {
		t.Error("expected", land, "desert cells got", snapshot.Biomes)
	}

	var buf bytes.Buffer
	if _, err := snapshot.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	s := buf.String()

	for _, want := range []string{`"status":"found"`, `"origin":[`, `"biomes":{"desert":`, `"tileRows":2`} {
		if !strings.Contains(s, want) {
			t.Error("snapshot missing", want, "in", s)
		}
	}

	decoded, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.ID != snapshot.ID || decoded.Seed != snapshot.Seed {
		t.Error("id or seed lost")
	}
	if len(decoded.Rivers) != len(snapshot.Rivers) {
		t.Fatal("expected", len(snapshot.Rivers), "rivers got", len(decoded.Rivers))
	}
	for i := range decoded.Rivers {
		a, b := snapshot.Rivers[i], decoded.Rivers[i]
		if a.Status != b.Status || a.Origin != b.Origin || len(a.Path) != len(b.Path) {
			t.Error("river", i, "expected", a, "got", b)
		}
	}
	if len(decoded.Vegetation) != len(snapshot.Vegetation) {
		t.Error("expected", len(snapshot.Vegetation), "trees got", len(decoded.Vegetation))
	}

	elevation, err := decoded.Elevation.Decompress()
	if err != nil {
		t.Fatal(err)
	}
	if elevation.Rows != result.Level.Rows() || elevation.Cols != result.Level.Cols() {
		t.Error("elevation expected", result.Level.Rows(), "x", result.Level.Cols(), "got", elevation.Rows, "x", elevation.Cols)
	}
}

func TestLevelImage(t *testing.T) {
	result := generate(t)
	data := result.Level

	img := LevelImage(data, terrain.VisualizeBiome)
	if b := img.Bounds(); b.Dx() != data.Cols() || b.Dy() != data.Rows() {
		t.Fatal("expected", data.Cols(), "x", data.Rows(), "got", b)
	}

	if c := img.RGBAAt(3, 0); c != terrain.WaterColor.Color() {
		t.Error("row 0 should be water colored, got", c)
	}
	for _, r := range result.Rivers {
		if r.Status != river.Found {
			t.Fatal("expected every river to reach water, got", r.Status)
		}
		for _, coord := range r.Path[:len(r.Path)-1] {
			if c := img.RGBAAt(coord.Col, coord.Row); c != riverColor {
				t.Error("river cell", coord, "not painted, got", c)
			}
		}
	}

	height := LevelImage(data, terrain.VisualizeHeight)
	for _, coord := range []level.Coord{{Row: 0, Col: 0}, {Row: 5, Col: 7}, {Row: 7, Col: 11}} {
		tile, r, c := data.Cell(coord)
		if want, got := tile.Texture(terrain.VisualizeHeight).At(r, c), height.RGBAAt(coord.Col, coord.Row); got != want {
			t.Error("height texture at", coord, "expected", want, "got", got)
		}
	}
}

func TestWriteImage(t *testing.T) {
	img := LevelImage(generate(t).Level, terrain.VisualizeBiome)

	var buf bytes.Buffer
	if err := WriteImage(&buf, img, FormatOf("out.PNG")); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Error("png bounds expected", img.Bounds(), "got", decoded.Bounds())
	}

	buf.Reset()
	if err := WriteImage(&buf, img, FormatOf("level.bmp")); err != nil {
		t.Fatal(err)
	}
	decoded, err = bmp.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Error("bmp bounds expected", img.Bounds(), "got", decoded.Bounds())
	}

	if err := WriteImage(&buf, img, "gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestScale(t *testing.T) {
	img := LevelImage(generate(t).Level, terrain.VisualizeBiome)
	if Scale(img, 1) != image.Image(img) {
		t.Error("factor 1 should not copy")
	}

	scaled := Scale(img, 3)
	b := img.Bounds()
	if sb := scaled.Bounds(); sb.Dx() != b.Dx()*3 || sb.Dy() != b.Dy()*3 {
		t.Fatal("expected", b.Dx()*3, "x", b.Dy()*3, "got", sb)
	}
	// Row 0 is water across the whole level.
	if c := color.RGBAModel.Convert(scaled.At(4, 1)); c != terrain.WaterColor.Color() {
		t.Error("expected water got", c)
	}
}

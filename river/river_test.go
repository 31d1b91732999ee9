// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package river

import (
	"errors"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/terrain/terraintest"
	"image/color"
	"math/rand"
	"testing"
)

var riverColor = color.RGBA{R: 30, G: 144, B: 255, A: 255}

// buildLevel fills a level from a function of global coordinates. Heights below 0.3 are water.
func buildLevel(tileRows, tileCols, h, w int, height func(coord level.Coord) float32) *level.LevelData {
	data := level.New(tileRows, tileCols, h, w)
	table := terraintest.HeightTable()

	for tileRow := 0; tileRow < tileRows; tileRow++ {
		for tileCol := 0; tileCol < tileCols; tileCol++ {
			tile := terrain.NewTileData(h, w)
			for row := 0; row < h; row++ {
				for col := 0; col < w; col++ {
					coord := data.GlobalCoord(level.TileCoordinate{TileRow: tileRow, TileCol: tileCol, LocalRow: row, LocalCol: col})
					v := height(coord)
					tile.Height.Set(row, col, v)
					tile.HeightClass[row*w+col] = terrain.Classify(v, table)
				}
			}
			data.SetTile(tileRow, tileCol, tile)
		}
	}

	return data
}

func painted(data *level.LevelData, coord level.Coord) bool {
	tile, row, col := data.Cell(coord)
	return tile.Surface.At(row, col) == riverColor
}

func TestCarver_TraceDescending(t *testing.T) {
	// Height decreases towards column 0, which is water.
	data := buildLevel(2, 2, 3, 4, func(coord level.Coord) float32 {
		if coord.Col == 0 {
			return 0.1
		}
		return 0.4 + float32(coord.Col)*0.05 + float32(coord.Row)*0.001
	})

	carver := New(Config{Color: riverColor}, rand.New(rand.NewSource(1)))
	origin := level.Coord{Row: 4, Col: 7}
	river := carver.Trace(data, origin, make(map[level.Coord]struct{}))

	if river.Status != Found {
		t.Fatal("expected found got", river.Status)
	}
	if river.Path[0] != origin {
		t.Error("path should start at origin, got", river.Path[0])
	}

	seen := make(map[level.Coord]bool)
	for i, coord := range river.Path {
		if seen[coord] {
			t.Error("revisited", coord)
		}
		seen[coord] = true

		water := data.Terrain(coord).Water()
		last := i == len(river.Path)-1
		if water != last {
			t.Error(coord, "water", water, "at path index", i, "of", len(river.Path))
		}
		if !last && !painted(data, coord) {
			t.Error(coord, "not painted")
		}
	}
	if end := river.Path[len(river.Path)-1]; painted(data, end) {
		t.Error("water cell", end, "should not be painted")
	}

	// Columns dominate the slope so the river heads straight west.
	want := []level.Coord{{Row: 4, Col: 7}, {Row: 4, Col: 6}, {Row: 4, Col: 5}, {Row: 4, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 2}, {Row: 4, Col: 1}, {Row: 4, Col: 0}}
	if len(river.Path) != len(want) {
		t.Fatal("expected path", want, "got", river.Path)
	}
	for i := range want {
		if river.Path[i] != want[i] {
			t.Fatal("expected path", want, "got", river.Path)
		}
	}
	if err := river.Err(); err != nil {
		t.Error(err)
	}
}

func TestCarver_TraceStranded(t *testing.T) {
	data := buildLevel(1, 1, 3, 3, func(level.Coord) float32 { return 0.9 })
	carver := New(Config{Color: riverColor}, rand.New(rand.NewSource(1)))

	origin := level.Coord{Row: 1, Col: 1}
	visited := map[level.Coord]struct{}{
		{Row: 0, Col: 1}: {}, {Row: 2, Col: 1}: {}, {Row: 1, Col: 0}: {}, {Row: 1, Col: 2}: {},
	}

	river := carver.Trace(data, origin, visited)
	if river.Status != Stranded {
		t.Fatal("expected stranded got", river.Status)
	}
	if len(river.Path) != 1 || river.Path[0] != origin {
		t.Error("expected path of origin only, got", river.Path)
	}
	if !painted(data, origin) {
		t.Error("origin not painted")
	}
	if err := river.Err(); !errors.Is(err, ErrStranded) {
		t.Error("expected", ErrStranded, "got", err)
	}
}

// Without water the river wanders until it has no unvisited neighbor left.
func TestCarver_TraceNoWater(t *testing.T) {
	data := buildLevel(2, 2, 4, 4, func(coord level.Coord) float32 {
		return 0.5 + float32((coord.Row*7+coord.Col*3)%11)*0.01
	})
	carver := New(Config{Color: riverColor}, rand.New(rand.NewSource(1)))

	river := carver.Trace(data, level.Coord{Row: 3, Col: 3}, make(map[level.Coord]struct{}))
	if river.Status != Stranded {
		t.Error("expected stranded got", river.Status)
	}
	if len(river.Path) > data.Rows()*data.Cols() {
		t.Error("path longer than the level:", len(river.Path))
	}
}

func TestCarver_TieBreak(t *testing.T) {
	data := buildLevel(1, 1, 3, 3, func(coord level.Coord) float32 {
		if coord == (level.Coord{Row: 1, Col: 1}) {
			return 0.9
		}
		return 0.5
	})
	carver := New(Config{Color: riverColor}, rand.New(rand.NewSource(1)))

	river := carver.Trace(data, level.Coord{Row: 1, Col: 1}, make(map[level.Coord]struct{}))
	if len(river.Path) < 2 || river.Path[1] != (level.Coord{Row: 0, Col: 1}) {
		t.Error("expected north neighbor to win the tie, got", river.Path)
	}

	visited := map[level.Coord]struct{}{{Row: 0, Col: 1}: {}}
	river = carver.Trace(data, level.Coord{Row: 1, Col: 1}, visited)
	if len(river.Path) < 2 || river.Path[1] != (level.Coord{Row: 2, Col: 1}) {
		t.Error("expected south neighbor to win the tie, got", river.Path)
	}
}

func TestLowest(t *testing.T) {
	data := buildLevel(1, 1, 3, 3, func(coord level.Coord) float32 {
		return 1 - float32(coord.Row*3+coord.Col)*0.05
	})
	candidates := []level.Coord{{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}}

	if got, ok := lowest(data, candidates, map[level.Coord]struct{}{}); !ok || got != (level.Coord{Row: 2, Col: 1}) {
		t.Error("expected (2, 1) got", got, ok)
	}

	visited := map[level.Coord]struct{}{{Row: 2, Col: 1}: {}}
	if got, ok := lowest(data, candidates, visited); !ok || got != (level.Coord{Row: 1, Col: 2}) {
		t.Error("expected (1, 2) got", got, ok)
	}

	for _, c := range candidates {
		visited[c] = struct{}{}
	}
	if got, ok := lowest(data, candidates, visited); ok {
		t.Error("expected no candidate got", got)
	}
}

// Neighbor heights come from the neighbor's own tile.
func TestCarver_CrossTile(t *testing.T) {
	const h, w = 2, 2
	data := buildLevel(1, 2, h, w, func(coord level.Coord) float32 {
		switch coord {
		case level.Coord{Row: 0, Col: 1}:
			return 0.9
		case level.Coord{Row: 0, Col: 2}:
			return 0.1 // water, across the tile border
		default:
			return 0.95
		}
	})
	carver := New(Config{Color: riverColor}, rand.New(rand.NewSource(1)))

	river := carver.Trace(data, level.Coord{Row: 0, Col: 1}, make(map[level.Coord]struct{}))
	if river.Status != Found || len(river.Path) != 2 || river.Path[1] != (level.Coord{Row: 0, Col: 2}) {
		t.Error("expected to step east into water, got", river.Status, river.Path)
	}
}

func TestCarver_ChooseOrigin(t *testing.T) {
	data := buildLevel(2, 2, 4, 4, func(coord level.Coord) float32 {
		if coord == (level.Coord{Row: 5, Col: 2}) {
			return 0.95
		}
		return 0.5
	})

	carver := New(Config{HeightThreshold: 0.9, MaxOriginAttempts: 10000}, rand.New(rand.NewSource(3)))
	origin, err := carver.ChooseOrigin(data)
	if err != nil {
		t.Fatal(err)
	}
	if origin != (level.Coord{Row: 5, Col: 2}) {
		t.Error("expected the only high cell got", origin)
	}

	carver = New(Config{HeightThreshold: 2, MaxOriginAttempts: 10}, rand.New(rand.NewSource(3)))
	if _, err := carver.ChooseOrigin(data); !errors.Is(err, ErrNoOrigin) {
		t.Error("expected", ErrNoOrigin, "got", err)
	}
}

func TestCarver_Carve(t *testing.T) {
	data := buildLevel(2, 2, 4, 4, func(coord level.Coord) float32 {
		if coord.Row == 0 {
			return 0.1
		}
		return 0.4 + float32(coord.Row)*0.05
	})

	carver := New(Config{Count: 3, HeightThreshold: 0.6, Color: riverColor}, rand.New(rand.NewSource(9)))
	rivers := carver.Carve(data)
	if len(rivers) != 3 {
		t.Fatal("expected 3 rivers got", len(rivers))
	}
	for i, river := range rivers {
		if river.Status != Found {
			t.Error("river", i, "expected found got", river.Status)
			continue
		}
		if data.Height(river.Origin) < 0.6 {
			t.Error("river", i, "origin", river.Origin, "below threshold")
		}
		if end := river.Path[len(river.Path)-1]; end.Row != 0 {
			t.Error("river", i, "expected to end on row 0, got", end)
		}
	}

	// All water: every river is exhausted and nothing hangs.
	flooded := buildLevel(2, 2, 4, 4, func(level.Coord) float32 { return 0 })
	rivers = New(Config{Count: 2, HeightThreshold: 0.6}, rand.New(rand.NewSource(9))).Carve(flooded)
	for i, river := range rivers {
		if river.Status != Exhausted || !errors.Is(river.Err(), ErrNoOrigin) {
			t.Error("river", i, "expected exhausted got", river.Status)
		}
	}
}

func TestStatus_String(t *testing.T) {
	if Found.String() != "found" || Stranded.String() != "stranded" || Exhausted.String() != "exhausted" {
		t.Error("unexpected status names")
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package river carves rivers down the steepest descent from high ground to water.
package river

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/chewxy/math32"
	"image/color"
	"math/rand"
)

var (
	ErrNoOrigin = errors.New("river: no cell reaches the height threshold")
	ErrStranded = errors.New("river: every neighbor already visited before reaching water")
)

type Status uint8

const (
	// Found means the river reached water.
	Found Status = iota
	// Stranded means the river ran out of unvisited neighbors.
	Stranded
	// Exhausted means no origin was found within the attempt limit.
	Exhausted
)

var statusNames = [...]string{
	Found:     "found",
	Stranded:  "stranded",
	Exhausted: "exhausted",
}

func (status Status) String() string {
	if int(status) < len(statusNames) {
		return statusNames[status]
	}
	return fmt.Sprintf("Status(%d)", status)
}

type Config struct {
	Count           int
	HeightThreshold float32
	Color           color.RGBA
	// MaxOriginAttempts bounds origin sampling. Zero means 4 times the level's vertex count.
	MaxOriginAttempts int
}

// River is the outcome of carving one river.
type River struct {
	Status Status
	Origin level.Coord
	// Path lists visited cells in order, ending with the water cell if Found.
	Path []level.Coord
}

// Err converts Status to an error (nil for Found).
func (river *River) Err() error {
	switch river.Status {
	case Stranded:
		return fmt.Errorf("%w at %s", ErrStranded, river.Path[len(river.Path)-1])
	case Exhausted:
		return ErrNoOrigin
	default:
		return nil
	}
}

type Carver struct {
	config Config
	rng    *rand.Rand
}

// New creates a Carver that samples origins from rng.
func New(config Config, rng *rand.Rand) *Carver {
	return &Carver{
		config: config,
		rng:    rng,
	}
}

// Carve generates Config.Count rivers, one after another, painting data's surfaces.
func (carver *Carver) Carve(data *level.LevelData) []River {
	rivers := make([]River, 0, carver.config.Count)
	for i := 0; i < carver.config.Count; i++ {
		origin, err := carver.ChooseOrigin(data)
		if err != nil {
			rivers = append(rivers, River{Status: Exhausted})
			continue
		}
		rivers = append(rivers, carver.Trace(data, origin, make(map[level.Coord]struct{})))
	}
	return rivers
}

// ChooseOrigin samples uniformly random cells until one has a height of at least
// Config.HeightThreshold.
func (carver *Carver) ChooseOrigin(data *level.LevelData) (level.Coord, error) {
	rows, cols := data.Rows(), data.Cols()
	if rows <= 0 || cols <= 0 {
		return level.Coord{}, ErrNoOrigin
	}

	attempts := carver.config.MaxOriginAttempts
	if attempts <= 0 {
		attempts = 4 * rows * cols
	}

	for i := 0; i < attempts; i++ {
		coord := level.Coord{Row: carver.rng.Intn(rows), Col: carver.rng.Intn(cols)}
		if data.Height(coord) >= carver.config.HeightThreshold {
			return coord, nil
		}
	}

	return level.Coord{}, fmt.Errorf("%w after %d attempts", ErrNoOrigin, attempts)
}

// Trace follows the lowest unvisited neighbor from origin until water, painting every land cell.
// Cells already in visited are never entered. visited is updated with the path.
func (carver *Carver) Trace(data *level.LevelData, origin level.Coord, visited map[level.Coord]struct{}) River {
	river := River{Origin: origin}
	neighbors := make([]level.Coord, 0, 4)
	current := origin

	// Each iteration visits a new cell, so this ends within the level's vertex count.
	for {
		visited[current] = struct{}{}
		river.Path = append(river.Path, current)

		if data.Terrain(current).Water() {
			river.Status = Found
			return river
		}

		data.Paint(current, carver.config.Color)

		next, ok := lowest(data, data.Neighbors(current, neighbors[:0]), visited)
		if !ok {
			river.Status = Stranded
			return river
		}
		current = next
	}
}

// lowest returns the unvisited candidate with the strictly lowest height, the earliest on ties.
func lowest(data *level.LevelData, candidates []level.Coord, visited map[level.Coord]struct{}) (level.Coord, bool) {
	var best level.Coord
	minHeight := math32.Inf(1)
	found := false

	for _, candidate := range candidates {
		if _, ok := visited[candidate]; ok {
			continue
		}
		// Read from the candidate's own tile, which may differ from the current one.
		if height := data.Height(candidate); height < minHeight {
			best = candidate
			minHeight = height
			found = true
		}
	}

	return best, found
}

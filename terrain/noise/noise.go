// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/ojrac/opensimplex-go"
)

const (
	// Perlin parameters.
	alpha   = 2.0
	beta    = 2.0
	octaves = 3
)

const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// Generator implements terrain.Source on top of a 2D noise function.
type Generator struct {
	name   string
	sample func(x, y float64) float64 // in [0, 1]
	// phase offsets every wave off the integer lattice, where gradient noise is 0.
	phase float64
}

// New creates a Generator for a named backend.
func New(backend string, seed int64) (*Generator, error) {
	switch backend {
	case BackendPerlin, "":
		return NewPerlin(seed), nil
	case BackendSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// NewPerlin creates a Generator backed by perlin noise with a seed.
func NewPerlin(seed int64) *Generator {
	p := perlin.NewPerlin(alpha, beta, octaves, seed)
	return &Generator{
		name:  BackendPerlin,
		phase: seedPhase(seed),
		sample: func(x, y float64) float64 {
			// Noise2D is centered on 0
			return clamp01(p.Noise2D(x, y)*0.5 + 0.5)
		},
	}
}

// NewSimplex creates a Generator backed by normalized open simplex noise.
func NewSimplex(seed int64) *Generator {
	s := opensimplex.NewNormalized(seed)
	return &Generator{
		name:  BackendSimplex,
		phase: seedPhase(seed),
		sample: func(x, y float64) float64 {
			return clamp01(s.Eval2(x, y))
		},
	}
}

func (g *Generator) String() string {
	return g.name
}

// Noise implements terrain.Source.Noise.
// Each cell is the amplitude weighted average of the waves, so it stays in [0, 1].
func (g *Generator) Noise(rows, cols int, scale, offsetX, offsetZ float32, waves []terrain.Wave) terrain.Field {
	field := terrain.NewField(rows, cols)
	if scale == 0 {
		scale = 1
	}

	var normalization float32
	for _, wave := range waves {
		normalization += wave.Amplitude
	}
	if normalization == 0 {
		return field
	}

	phases := make([][2]float64, len(waves))
	for i := range waves {
		phases[i][0], phases[i][1] = wavePhase(g.phase, i)
	}

	for row := 0; row < rows; row++ {
		sampleZ := (float32(row) + offsetZ) / scale
		for col := 0; col < cols; col++ {
			sampleX := (float32(col) + offsetX) / scale

			var n float32
			for i, wave := range waves {
				x := float64(sampleX*wave.Frequency+wave.Seed) + phases[i][0]
				z := float64(sampleZ*wave.Frequency+wave.Seed) + phases[i][1]
				n += wave.Amplitude * float32(g.sample(x, z))
			}
			field.Set(row, col, n/normalization)
		}
	}

	return field
}

// Uniform implements terrain.Source.Uniform.
// Row r of the result describes global row rowOffset + rows - 1 - r, matching the reversed
// local indexing of tiles.
func (g *Generator) Uniform(rows, cols int, centerRow, maxDistance, rowOffset float32) terrain.Field {
	return Uniform(rows, cols, centerRow, maxDistance, rowOffset)
}

// Uniform is the latitude band shared by every backend. It does not depend on a seed.
func Uniform(rows, cols int, centerRow, maxDistance, rowOffset float32) terrain.Field {
	field := terrain.NewField(rows, cols)
	if maxDistance == 0 {
		return field
	}

	for row := 0; row < rows; row++ {
		sampleZ := float32(row) + rowOffset
		value := math32.Abs(sampleZ-centerRow) / maxDistance
		r := rows - row - 1
		for col := 0; col < cols; col++ {
			field.Set(r, col, value)
		}
	}

	return field
}

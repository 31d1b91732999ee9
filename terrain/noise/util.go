// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"
	"math/rand"
)

// goldenRatio spreads successive wave phases evenly over [0, 1).
const goldenRatio = 0.6180339887498949

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func frac(f float64) float64 {
	return f - math.Floor(f)
}

func seedPhase(seed int64) float64 {
	return rand.New(rand.NewSource(seed)).Float64()
}

// wavePhase returns the sample offsets of the i-th wave, both in [0.1, 0.9].
func wavePhase(phase float64, i int) (x, z float64) {
	p := phase + float64(i)*goldenRatio
	return 0.1 + 0.8*frac(p), 0.1 + 0.8*frac(p+0.5)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type ColorVec [3]float32

// WaterColor is written to the biome texture wherever there is no biome.
var WaterColor = RGB(0, 0, 255)

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

// ParseColor parses "#rrggbb" (the leading # is optional).
func ParseColor(s string) (ColorVec, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return ColorVec{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorVec{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB(byte(v>>16), byte(v>>8), byte(v)), nil
}

func (vec ColorVec) String() string {
	c := vec.Color()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func clamp(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f*255 + 0.5)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed quantizes scalar fields to nibbles and run length encodes them.
package compressed

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/terrain"
)

var ErrTruncated = errors.New("compressed: heightmap data truncated")

// Heightmap is a field quantized to 16 levels between Min and Max.
type Heightmap struct {
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Min  float32 `json:"min"`
	Max  float32 `json:"max"`
	Data []byte  `json:"data"`
}

// Compress quantizes field between its own minimum and maximum.
func Compress(field terrain.Field) *Heightmap {
	heightmap := &Heightmap{
		Rows: field.Rows,
		Cols: field.Cols,
	}
	if len(field.Data) == 0 {
		return heightmap
	}

	heightmap.Min, heightmap.Max = field.Data[0], field.Data[0]
	for _, v := range field.Data {
		heightmap.Min = min(heightmap.Min, v)
		heightmap.Max = max(heightmap.Max, v)
	}

	var buffer Buffer
	buffer.Grow(len(field.Data) / maxCount)
	for _, v := range field.Data {
		buffer.writeByte(heightmap.quantize(v))
	}
	heightmap.Data = buffer.Bytes()

	return heightmap
}

// Decompress expands the heightmap back into a field. Each value is within
// (Max - Min) / 16 of the original.
func (heightmap *Heightmap) Decompress() (terrain.Field, error) {
	field := terrain.NewField(heightmap.Rows, heightmap.Cols)

	var buffer Buffer
	buffer.Reset(heightmap.Data)

	raw := make([]byte, len(field.Data))
	n, _ := buffer.Read(raw)
	if n != len(raw) {
		return field, fmt.Errorf("%w: got %d of %d values", ErrTruncated, n, len(raw))
	}

	for i, b := range raw {
		field.Data[i] = heightmap.dequantize(b)
	}
	return field, nil
}

func (heightmap *Heightmap) quantize(v float32) byte {
	span := heightmap.Max - heightmap.Min
	if span <= 0 {
		return 0
	}
	return clampToByte((v - heightmap.Min) / span * 255)
}

// dequantize maps a nibble to the center of its range.
func (heightmap *Heightmap) dequantize(b byte) float32 {
	span := heightmap.Max - heightmap.Min
	return heightmap.Min + (float32(roundByte(b))+8)/256*span
}

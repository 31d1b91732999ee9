// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes generated levels.
package export

import (
	"github.com/SoftbearStudios/biomegen/generator"
	"github.com/SoftbearStudios/biomegen/level"
	"github.com/SoftbearStudios/biomegen/river"
	"github.com/SoftbearStudios/biomegen/terrain"
	"github.com/SoftbearStudios/biomegen/terrain/compressed"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"io"
	"reflect"
	"unsafe"
)

// Snapshot is the JSON form of a generated level.
type Snapshot struct {
	ID         uuid.UUID             `json:"id"`
	Seed       int64                 `json:"seed"`
	TileRows   int                   `json:"tileRows"`
	TileCols   int                   `json:"tileCols"`
	TileHeight int                   `json:"tileHeight"`
	TileWidth  int                   `json:"tileWidth"`
	Elevation  *compressed.Heightmap `json:"elevation"`
	Water      int                   `json:"water"`
	Biomes     map[string]int        `json:"biomes"`
	Rivers     []River               `json:"rivers"`
	Vegetation []Tree                `json:"vegetation"`
}

type River struct {
	Status river.Status  `json:"status"`
	Origin level.Coord   `json:"origin"`
	Path   []level.Coord `json:"path,omitempty"`
}

type Tree struct {
	Coord    level.Coord `json:"coord"`
	Biome    int         `json:"biome"`
	Prefab   string      `json:"prefab"`
	Position [3]float32  `json:"position"`
}

// NewSnapshot summarizes a generation result.
func NewSnapshot(result *generator.Result) *Snapshot {
	data := result.Level
	snapshot := &Snapshot{
		ID:         result.ID,
		Seed:       result.Seed,
		TileRows:   data.TileRows(),
		TileCols:   data.TileCols(),
		TileHeight: data.TileHeight(),
		TileWidth:  data.TileWidth(),
		Elevation: compressed.Compress(data.Field(func(tile *terrain.TileData) terrain.Field {
			return tile.Elevation
		})),
		Biomes:     make(map[string]int),
		Rivers:     make([]River, len(result.Rivers)),
		Vegetation: make([]Tree, len(result.Vegetation)),
	}

	for row := 0; row < data.Rows(); row++ {
		for col := 0; col < data.Cols(); col++ {
			if biome := data.Biome(level.Coord{Row: row, Col: col}); biome != nil {
				snapshot.Biomes[biome.Name]++
			} else {
				snapshot.Water++
			}
		}
	}

	for i, r := range result.Rivers {
		snapshot.Rivers[i] = River{Status: r.Status, Origin: r.Origin, Path: r.Path}
	}
	for i, placement := range result.Vegetation {
		snapshot.Vegetation[i] = Tree{
			Coord:    placement.Coord,
			Biome:    placement.Biome,
			Prefab:   placement.Prefab,
			Position: placement.Position,
		}
	}

	return snapshot
}

func (snapshot *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(snapshot)
}

func (snapshot *Snapshot) WriteTo(w io.Writer) (int64, error) {
	buf, err := snapshot.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	snapshot := new(Snapshot)
	if err := json.NewDecoder(r).Decode(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(level.Coord{}).String(), encodeCoord, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(river.Status(0)).String(), encodeStatus, neverEmpty)

	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(level.Coord{}).String(), decodeCoord)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(river.Status(0)).String(), decodeStatus)

	return jsoniter.Config{
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		TagKey:                        "json",
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

// Encodes level.Coord as [row, col]
func encodeCoord(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	coord := (*level.Coord)(ptr)
	stream.WriteArrayStart()
	stream.WriteInt(coord.Row)
	stream.WriteMore()
	stream.WriteInt(coord.Col)
	stream.WriteArrayEnd()
}

func decodeCoord(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	coord := (*level.Coord)(ptr)
	i := 0
	for iter.ReadArray() {
		switch i {
		case 0:
			coord.Row = iter.ReadInt()
		case 1:
			coord.Col = iter.ReadInt()
		default:
			iter.ReportError("decode level.Coord", "more than 2 elements")
			return
		}
		i++
	}
}

func encodeStatus(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*river.Status)(ptr).String())
}

func decodeStatus(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	s := iter.ReadString()
	for _, status := range []river.Status{river.Found, river.Stranded, river.Exhausted} {
		if status.String() == s {
			*(*river.Status)(ptr) = status
			return
		}
	}
	iter.ReportError("decode river.Status", "unknown status "+s)
}

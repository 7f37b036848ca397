// Package tilemap provides the sparse tile map produced from a thresholded image
// and its serialization into a Lua table literal.
package tilemap

import (
	"errors"
	"maps"
)

// Point represents tile coordinates, with (0, 0) at the top-left pixel of the source image.
type Point struct {
	X int
	Y int
}

// Kind is the tile name understood by the game, e.g. "out-of-map".
type Kind string

// KindVoid marks tiles removed from the map. Tiles not present in a Map are normal floor.
const KindVoid Kind = "out-of-map"

var ErrInvalidThreshold = errors.New("img2map: invalid threshold")

// Map is a sparse mapping from tile coordinates to tile kinds.
type Map struct {
	tiles map[Point]Kind
}

func New() *Map {
	return &Map{tiles: make(map[Point]Kind)}
}

func (m *Map) Set(p Point, kind Kind) {
	m.tiles[p] = kind
}

// Get returns the kind stored at p and whether the tile is present.
func (m *Map) Get(p Point) (Kind, bool) {
	kind, ok := m.tiles[p]
	return kind, ok
}

func (m *Map) Len() int {
	return len(m.tiles)
}

// Tiles returns a copy of the underlying mapping.
func (m *Map) Tiles() map[Point]Kind {
	return maps.Clone(m.tiles)
}

// Visitor defines an interface for sources of tiles (maps, databases).
type Visitor interface {
	// VisitTiles calls the visitor for each tile, stopping at the first error.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(Point, Kind) error) error
}

// VisitTiles visits tiles in (x, y) order.
func (m *Map) VisitTiles(visitor func(Point, Kind) error) error {
	for _, p := range m.sortedPoints() {
		if err := visitor(p, m.tiles[p]); err != nil {
			return err
		}
	}
	return nil
}

package tilemap

import (
	"cmp"
	"errors"
	"iter"
	"slices"
)

var errVisitCancelled = errors.New("visit cancelled")

func (m *Map) sortedPoints() []Point {
	points := make([]Point, 0, len(m.tiles))
	for p := range m.tiles {
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
	return points
}

// All returns an iterator over all tiles ordered by x, then by y.
func (m *Map) All() iter.Seq2[Point, Kind] {
	return func(yield func(Point, Kind) bool) {
		for _, p := range m.sortedPoints() {
			if !yield(p, m.tiles[p]) {
				return
			}
		}
	}
}

// IterTiles returns an iterator over all tiles of the visitor.
// Iteration may panic on unrecoverable errors.
func IterTiles(v Visitor) iter.Seq2[Point, Kind] {
	return func(yield func(Point, Kind) bool) {
		err := v.VisitTiles(func(p Point, kind Kind) error {
			if !yield(p, kind) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// Collect reads all tiles of the visitor into a new Map.
func Collect(v Visitor) (*Map, error) {
	m := New()
	err := v.VisitTiles(func(p Point, kind Kind) error {
		m.Set(p, kind)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

package tiledb

import (
	"fmt"

	"github.com/eak1mov/go-img2map/tilemap"
	"github.com/google/hilbert"
)

// curveSize returns the side of the smallest power-of-two square covering width x height.
func curveSize(width, height int) int {
	n := 1
	for n < max(width, height) {
		n <<= 1
	}
	return n
}

func newCurve(width, height int) (*hilbert.Hilbert, error) {
	return hilbert.NewHilbert(curveSize(width, height))
}

func tileCode(h *hilbert.Hilbert, p tilemap.Point) (int64, error) {
	code, err := h.MapInverse(p.X, p.Y)
	if err != nil {
		return 0, fmt.Errorf("%w: %v: %w", ErrOutOfBounds, p, err)
	}
	return int64(code), nil
}

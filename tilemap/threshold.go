package tilemap

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	MinThreshold     = 1
	MaxThreshold     = 254
	DefaultThreshold = 128
)

func ValidateThreshold(threshold int) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidThreshold, threshold, MinThreshold, MaxThreshold)
	}
	return nil
}

// FromImage converts img to greyscale and marks every pixel darker than threshold as void.
func FromImage(img image.Image, threshold int) (*Map, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	// Grayscale returns an image with its origin at (0, 0) and R == G == B.
	grey := imaging.Grayscale(img)
	bounds := grey.Bounds()

	m := New()
	for x := 0; x < bounds.Dx(); x++ {
		for y := 0; y < bounds.Dy(); y++ {
			if int(grey.Pix[grey.PixOffset(x, y)]) < threshold {
				m.Set(Point{X: x, Y: y}, KindVoid)
			}
		}
	}
	return m, nil
}

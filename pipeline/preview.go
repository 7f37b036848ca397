package pipeline

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// PreviewThreshold is the grey level at and above which preview pixels are white.
const PreviewThreshold = 128

var previewPalette = color.Palette{color.Black, color.White}

// Preview renders img as a black and white image without dithering.
func Preview(img image.Image) *image.Paletted {
	grey := imaging.Grayscale(img)
	bounds := grey.Bounds()

	dst := image.NewPaletted(bounds, previewPalette)
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			if grey.Pix[grey.PixOffset(x, y)] >= PreviewThreshold {
				dst.SetColorIndex(x, y, 1)
			}
		}
	}
	return dst
}

// SavePreview writes the preview of img into dir under the base name of imagePath
// and returns the written file path. Files with extensions that cannot be encoded
// are saved as PNG.
func SavePreview(img image.Image, dir, imagePath string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(dir, filepath.Base(imagePath))
	if _, err := imaging.FormatFromFilename(filePath); err != nil {
		filePath = strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".png"
	}

	if err := imaging.Save(Preview(img), filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

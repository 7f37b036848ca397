package main

import (
	"context"
	"flag"
	"image"
	"log"
	"log/slog"

	"github.com/eak1mov/go-img2map/pipeline"
	"github.com/eak1mov/go-img2map/tilemap"
)

// imageFlags are the image preparation flags shared by convert and preview.
type imageFlags struct {
	preview    bool
	previewDir string
	invert     bool
	tile       bool
	scale      float64
	width      int
	height     int
	border     int
	quantize   int
	threshold  int
}

func (c *imageFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.preview, "p", false, "Save a preview image and exit")
	f.BoolVar(&c.preview, "preview", false, "Save a preview image and exit")
	f.StringVar(&c.previewDir, "preview_dir", "preview", "Preview output directory")
	f.BoolVar(&c.invert, "i", false, "Invert the image colours")
	f.BoolVar(&c.invert, "invert", false, "Invert the image colours")
	f.BoolVar(&c.tile, "t", false, "Make the image seamless")
	f.BoolVar(&c.tile, "tile", false, "Make the image seamless")
	f.Float64Var(&c.scale, "scale", 0, "Scale the image and maintain the aspect ratio")
	f.IntVar(&c.width, "width", 0, "Set the image width in pixels")
	f.IntVar(&c.height, "height", 0, "Set the image height in pixels")
	f.IntVar(&c.border, "border", 0, "Add a border of the given thickness around all edges of the image")
	f.IntVar(&c.quantize, "quantize", 0, "Quantize the image colours into a limited number (1-255)")
	f.IntVar(&c.threshold, "threshold", tilemap.DefaultThreshold, "Greyscale value threshold pixels are compared to (1-254)")
}

func (c *imageFlags) options() pipeline.Options {
	return pipeline.Options{
		Scale:    c.scale,
		Width:    c.width,
		Height:   c.height,
		Invert:   c.invert,
		Quantize: c.quantize,
		Tile:     c.tile,
		Border:   c.border,
	}
}

func (c *imageFlags) validate() error {
	if err := c.options().Validate(); err != nil {
		return err
	}
	return tilemap.ValidateThreshold(c.threshold)
}

// prepare loads the image and applies the selected transformations.
func (c *imageFlags) prepare(ctx context.Context, imagePath string) (image.Image, error) {
	img, err := pipeline.Load(imagePath)
	if err != nil {
		return nil, err
	}
	log.Println("Processing:", imagePath)

	size := img.Bounds().Size()
	log.Printf("Size: %dx%dpx", size.X, size.Y)

	img, err = pipeline.Process(ctx, img, c.options(), pipeline.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}

	if newSize := img.Bounds().Size(); newSize != size {
		log.Printf("New size: %dx%dpx", newSize.X, newSize.Y)
	}
	return img, nil
}

func (c *imageFlags) savePreview(img image.Image, imagePath string) error {
	filePath, err := pipeline.SavePreview(img, c.previewDir, imagePath)
	if err != nil {
		return err
	}
	log.Println("Saved preview:", filePath)
	return nil
}

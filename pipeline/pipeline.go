// Package pipeline prepares source images before they are converted into tile maps:
// loading, resizing, inverting, quantizing, tiling, bordering and previewing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-img2map/tiling"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotExist       = errors.New("img2map: file doesn't exist")
	ErrDecode         = errors.New("img2map: failed to open image")
	ErrInvalidOptions = errors.New("img2map: invalid options")
	ErrInvalidSize    = errors.New("img2map: invalid image size")
)

const MaxQuantize = 255

// Options selects the transformations applied by Process. Zero values disable a step.
type Options struct {
	Scale    float64 // scale factor, keeps aspect ratio
	Width    int     // explicit width, overrides Scale
	Height   int     // explicit height, overrides Scale
	Invert   bool
	Quantize int // number of colours, 1..255
	Tile     bool
	Border   int // border thickness in pixels
}

func (o Options) Validate() error {
	switch {
	case o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0):
		return fmt.Errorf("%w: scale %v", ErrInvalidOptions, o.Scale)
	case o.Width < 0 || o.Height < 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.Quantize < 0 || o.Quantize > MaxQuantize:
		return fmt.Errorf("%w: quantize %d not in [1, %d]", ErrInvalidOptions, o.Quantize, MaxQuantize)
	case o.Border < 0:
		return fmt.Errorf("%w: border %d", ErrInvalidOptions, o.Border)
	}
	return nil
}

func (o Options) resizes() bool {
	return o.Scale != 0 || o.Width != 0 || o.Height != 0
}

type config struct {
	logger      *slog.Logger
	concurrency int
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithConcurrency is passed to the tiling filter.
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// Load opens and decodes the image file at filePath.
func Load(filePath string) (image.Image, error) {
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, filePath)
	}

	img, err := imaging.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, filePath, err)
	}
	return img, nil
}

// Process applies the steps selected by opts in a fixed order:
// resize, invert, quantize, tile, border.
func Process(ctx context.Context, img image.Image, opts Options, options ...Option) (image.Image, error) {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		opt(&cfg)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.resizes() {
		width, height := targetSize(img.Bounds().Size(), opts)
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
		}
		cfg.logger.Info("resizing", "width", width, "height", height)
		img = imaging.Resize(img, width, height, imaging.CatmullRom)
	}

	if opts.Invert {
		cfg.logger.Info("inverting")
		img = imaging.Invert(img)
	}

	if opts.Quantize > 0 {
		cfg.logger.Info("quantizing", "colors", opts.Quantize)
		img = quantizeImage(img, opts.Quantize)
	}

	if opts.Tile {
		cfg.logger.Info("tiling")
		tilingOpts := []tiling.Option{tiling.WithLogger(cfg.logger)}
		if cfg.concurrency > 0 {
			tilingOpts = append(tilingOpts, tiling.WithConcurrency(cfg.concurrency))
		}
		tiled, err := tiling.Seamless(ctx, img, tilingOpts...)
		if err != nil {
			return nil, err
		}
		img = tiled
	}

	if opts.Border > 0 {
		cfg.logger.Info("adding border", "thickness", opts.Border)
		img = addBorder(img, opts.Border)
	}

	return img, nil
}

// targetSize scales size by opts.Scale (rounding half to even) and then applies explicit dimensions.
func targetSize(size image.Point, opts Options) (int, int) {
	width, height := size.X, size.Y
	if opts.Scale != 0 {
		width = int(math.RoundToEven(float64(width) * opts.Scale))
		height = int(math.RoundToEven(float64(height) * opts.Scale))
	}
	if opts.Width != 0 {
		width = opts.Width
	}
	if opts.Height != 0 {
		height = opts.Height
	}
	return width, height
}

func quantizeImage(img image.Image, colors int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, colors), img)

	bounds := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), palette)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), img, bounds.Min)
	return dst
}

func addBorder(img image.Image, thickness int) *image.NRGBA {
	size := img.Bounds().Size()
	background := imaging.New(size.X+2*thickness, size.Y+2*thickness, color.Black)
	return imaging.Paste(background, img, image.Pt(thickness, thickness))
}

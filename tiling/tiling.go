// Package tiling implements a filter that makes images seamlessly tileable.
//
// Every output pixel is resampled from a sinusoidally warped source coordinate
// using bilinear interpolation whose neighbors wrap around the source edges,
// so the output repeats in both axes without a visible seam.
package tiling

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyImage = errors.New("img2map: empty image")

type config struct {
	logger      *slog.Logger
	concurrency int
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithConcurrency limits the number of rows resampled at the same time.
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// Seamless returns a tileable copy of src with the same dimensions.
// The source image is converted to RGB; the output is fully opaque.
func Seamless(ctx context.Context, src image.Image, opts ...Option) (*image.RGBA, error) {
	cfg := config{
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, w, h)
	}

	// Clone yields non-premultiplied pixels with the origin at (0, 0);
	// alpha is ignored afterwards.
	rgb := imaging.Clone(src)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	warpX := warpTable(w, w)
	warpY := warpTable(h, h)

	cfg.logger.Debug("img2map: tiling", "width", w, "height", h, "concurrency", cfg.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.concurrency, 1))
	for y := range h {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := dst.Pix[dst.PixOffset(0, y):]
			for x := range w {
				px := sample(rgb, warpX[x], warpY[y])
				copy(row[x*4:], px[:])
				row[x*4+3] = 0xff
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return dst, nil
}

// warpTable maps each of n output positions to a source coordinate in [0, srcN-1].
// Both ends of the axis map to the middle of the source, the middle maps to its edges.
func warpTable(n, srcN int) []float64 {
	table := make([]float64, n)
	for p := range table {
		i := 0.0
		if n > 1 {
			i = float64(p) / float64(n-1)
		}
		i = math.Sin(i*math.Pi*2 + math.Pi)
		i = i/2 + 0.5
		table[p] = math.Abs(i * float64(srcN-1))
	}
	return table
}

// wrap returns the index following i on an axis of length n, wrapping to 0 at the end.
func wrap(i, n int) int {
	return (i + 1) % n
}

// neighbors returns the four source pixels surrounding (x, y) and the fractional offsets.
func neighbors(x, y float64, w, h int) (x0, y0, x1, y1 int, fx, fy float64) {
	floorX, floorY := math.Floor(x), math.Floor(y)
	x0, y0 = int(floorX), int(floorY)
	return x0, y0, wrap(x0, w), wrap(y0, h), x - floorX, y - floorY
}

func sample(src *image.NRGBA, x, y float64) [3]uint8 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	x0, y0, x1, y1, fx, fy := neighbors(x, y, w, h)

	a := src.Pix[src.PixOffset(x0, y0):]
	b := src.Pix[src.PixOffset(x1, y0):]
	c := src.Pix[src.PixOffset(x0, y1):]
	d := src.Pix[src.PixOffset(x1, y1):]

	var out [3]uint8
	for i := range out {
		out[i] = blend(a[i], b[i], c[i], d[i], fx, fy)
	}
	return out
}

// blend interpolates the four neighbor values with the bilinear area weights
// (1-fx)(1-fy), fx(1-fy), (1-fx)fy and fx*fy, truncating the result.
// Identical neighbors blend to exactly the same value.
func blend(a, b, c, d uint8, fx, fy float64) uint8 {
	top := float64(a) + (float64(b)-float64(a))*fx
	bottom := float64(c) + (float64(d)-float64(c))*fx
	return uint8(top + (bottom-top)*fy)
}

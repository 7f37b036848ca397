package pipeline_test

import (
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/eak1mov/go-img2map/internal"
	"github.com/eak1mov/go-img2map/pipeline"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	img := internal.UniformGray(3, 1, 0)
	img.Pix[1] = pipeline.PreviewThreshold - 1
	img.Pix[2] = pipeline.PreviewThreshold

	preview := pipeline.Preview(img)
	require.Equal(t, []uint8{0, 0, 1}, preview.Pix)
}

func TestSavePreview(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "preview")
	img := internal.GradientRGBA(6, 4)

	filePath, err := pipeline.SavePreview(img, dir, "/some/where/map.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "map.png"), filePath)

	saved, err := imaging.Open(filePath)
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), saved.Bounds().Size())
}

func TestSavePreviewUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()

	filePath, err := pipeline.SavePreview(internal.UniformGray(2, 2, 255), dir, "map.webp")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "map.png"), filePath)
}

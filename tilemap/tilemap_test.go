package tilemap_test

import (
	"image/color"
	"maps"
	"strings"
	"testing"

	"github.com/eak1mov/go-img2map/internal"
	"github.com/eak1mov/go-img2map/tilemap"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromImageSingleDarkPixel(t *testing.T) {
	img := internal.UniformGray(4, 4, 200)
	img.SetGray(1, 1, color.Gray{Y: 50})

	m, err := tilemap.FromImage(img, tilemap.DefaultThreshold)
	require.NoError(t, err)

	want := map[tilemap.Point]tilemap.Kind{{X: 1, Y: 1}: tilemap.KindVoid}
	if diff := cmp.Diff(want, m.Tiles()); diff != "" {
		t.Errorf("FromImage mismatch (-want+got):\n%v", diff)
	}
}

func TestFromImageThreshold(t *testing.T) {
	img := internal.UniformGray(3, 2, 100)

	m, err := tilemap.FromImage(img, 100)
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())

	m, err = tilemap.FromImage(img, 101)
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())
}

func TestFromImageRGB(t *testing.T) {
	img := internal.UniformRGBA(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	m, err := tilemap.FromImage(img, tilemap.DefaultThreshold)
	require.NoError(t, err)

	kind, ok := m.Get(tilemap.Point{X: 0, Y: 1})
	require.True(t, ok)
	require.Equal(t, tilemap.KindVoid, kind)
	require.Equal(t, 1, m.Len())
}

func TestFromImageInvalidThreshold(t *testing.T) {
	img := internal.UniformGray(1, 1, 0)
	for _, threshold := range []int{0, 255, -1, 1000} {
		_, err := tilemap.FromImage(img, threshold)
		require.ErrorIs(t, err, tilemap.ErrInvalidThreshold, "threshold %d", threshold)
	}
}

func TestAllOrder(t *testing.T) {
	m := tilemap.New()
	for _, p := range []tilemap.Point{{2, 0}, {0, 5}, {1, 1}, {0, 1}} {
		m.Set(p, tilemap.KindVoid)
	}

	var got []tilemap.Point
	for p := range m.All() {
		got = append(got, p)
	}
	want := []tilemap.Point{{0, 1}, {0, 5}, {1, 1}, {2, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All order mismatch (-want+got):\n%v", diff)
	}

	collected, err := tilemap.Collect(m)
	require.NoError(t, err)
	require.Equal(t, m.Tiles(), maps.Collect(tilemap.IterTiles(collected)))
}

func TestMarshalLuaEmpty(t *testing.T) {
	require.Equal(t, "{\n\t}\n", string(tilemap.MarshalLua(tilemap.New())))
}

func TestMarshalLuaGrouping(t *testing.T) {
	m := tilemap.New()
	m.Set(tilemap.Point{X: 1, Y: 0}, tilemap.KindVoid)
	m.Set(tilemap.Point{X: 0, Y: 1}, tilemap.KindVoid)
	m.Set(tilemap.Point{X: 0, Y: 0}, tilemap.KindVoid)

	want := strings.Join([]string{
		"{",
		"\t[0] = {",
		"\t\t[0] = \"out-of-map\",",
		"\t\t[1] = \"out-of-map\"",
		"\t},",
		"\t[1] = {",
		"\t\t[0] = \"out-of-map\"",
		"\t}",
		"}",
		"",
	}, "\n")

	if diff := cmp.Diff(want, string(tilemap.MarshalLua(m))); diff != "" {
		t.Errorf("MarshalLua mismatch (-want+got):\n%v", diff)
	}
}

func TestWriteLuaSingle(t *testing.T) {
	m := tilemap.New()
	m.Set(tilemap.Point{X: 3, Y: 7}, tilemap.KindVoid)

	var sb strings.Builder
	require.NoError(t, tilemap.WriteLua(&sb, m))
	require.Equal(t, "{\n\t[3] = {\n\t\t[7] = \"out-of-map\"\n\t}\n}\n", sb.String())
}

package tiledb_test

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/eak1mov/go-img2map/tiledb"
	"github.com/eak1mov/go-img2map/tilemap"
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/hilbert"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, filePath string, width, height int, m *tilemap.Map) {
	t.Helper()

	writer, err := tiledb.NewWriter(filePath, width, height, tiledb.WithMetadata(map[string]string{
		"source": "castle.png",
		"width":  "ignored",
	}))
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.WriteMap(m))
	require.NoError(t, writer.Finalize())
}

func TestWriterReader(t *testing.T) {
	const width, height = 13, 6

	m := tilemap.New()
	for x := range width {
		for y := range height {
			if (x*7+y*3)%5 == 0 {
				m.Set(tilemap.Point{X: x, Y: y}, tilemap.KindVoid)
			}
		}
	}

	filePath := filepath.Join(t.TempDir(), "castle.sqlite")
	writeMap(t, filePath, width, height, m)

	reader, err := tiledb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	metadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	want := map[string]string{"width": "13", "height": "6", "source": "castle.png"}
	if diff := gocmp.Diff(want, metadata); diff != "" {
		t.Errorf("ReadMetadata mismatch (-want+got):\n%v", diff)
	}

	w, h, err := reader.ReadSize()
	require.NoError(t, err)
	require.Equal(t, []int{width, height}, []int{w, h})

	got, err := reader.ReadMap()
	require.NoError(t, err)
	if diff := gocmp.Diff(m.Tiles(), got.Tiles()); diff != "" {
		t.Errorf("ReadMap mismatch (-want+got):\n%v", diff)
	}
	require.Equal(t, string(tilemap.MarshalLua(m)), string(tilemap.MarshalLua(got)))

	for p, kind := range m.All() {
		gotKind, ok, err := reader.ReadTile(p)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, kind, gotKind)
	}

	_, ok, err := reader.ReadTile(tilemap.Point{X: 1, Y: 0})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVisitOrder(t *testing.T) {
	const width, height = 8, 8

	m := tilemap.New()
	for x := range width {
		for y := range height {
			m.Set(tilemap.Point{X: x, Y: y}, tilemap.KindVoid)
		}
	}

	filePath := filepath.Join(t.TempDir(), "full.sqlite")
	writeMap(t, filePath, width, height, m)

	reader, err := tiledb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	curve, err := hilbert.NewHilbert(8)
	require.NoError(t, err)
	code := func(p tilemap.Point) int {
		c, err := curve.MapInverse(p.X, p.Y)
		require.NoError(t, err)
		return c
	}

	want := slices.SortedFunc(maps.Keys(m.Tiles()), func(a, b tilemap.Point) int {
		return cmp.Compare(code(a), code(b))
	})

	var got []tilemap.Point
	for p := range tilemap.IterTiles(reader) {
		got = append(got, p)
	}
	if diff := gocmp.Diff(want, got); diff != "" {
		t.Errorf("VisitTiles order mismatch (-want+got):\n%v", diff)
	}
}

func TestWriterOutOfBounds(t *testing.T) {
	writer, err := tiledb.NewWriter(filepath.Join(t.TempDir(), "small.sqlite"), 2, 2)
	require.NoError(t, err)
	defer writer.Close()

	for _, p := range []tilemap.Point{{X: 2, Y: 0}, {X: 0, Y: 2}, {X: -1, Y: 0}} {
		require.ErrorIs(t, writer.WriteTile(p, tilemap.KindVoid), tiledb.ErrOutOfBounds)
	}
}

func TestWriterInvalidSize(t *testing.T) {
	_, err := tiledb.NewWriter(filepath.Join(t.TempDir(), "empty.sqlite"), 0, 3)
	require.ErrorIs(t, err, tiledb.ErrInvalidMetadata)
}

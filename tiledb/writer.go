// Package tiledb provides API for storing tile maps in SQLite databases.
//
// Tiles are clustered along a Hilbert curve covering the image, so that tiles
// close on the map are read close together.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package tiledb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/eak1mov/go-img2map/tilemap"
	"github.com/google/hilbert"
)

var (
	ErrOutOfBounds     = errors.New("img2map: tile out of bounds")
	ErrInvalidMetadata = errors.New("img2map: invalid metadata")
)

const (
	MetadataWidth  = "width"
	MetadataHeight = "height"
)

// Writer stores tiles of a single map.
type Writer struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	curve  *hilbert.Hilbert
	width  int
	height int
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new database at filePath for a map of the given size.
// Tiles are written in a single transaction which is committed by Finalize.
func NewWriter(filePath string, width, height int, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidMetadata, width, height)
	}

	curve, err := newCurve(width, height)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			tile_code INTEGER,
			x INTEGER,
			y INTEGER,
			kind TEXT
		);
	`)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		MetadataWidth:  strconv.Itoa(width),
		MetadataHeight: strconv.Itoa(height),
	}
	for k, v := range config.Metadata {
		if _, reserved := metadata[k]; !reserved {
			metadata[k] = v
		}
	}
	for k, v := range metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare("INSERT INTO tiles (tile_code, x, y, kind) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return &Writer{
		db:     db,
		tx:     tx,
		stmt:   stmt,
		curve:  curve,
		width:  width,
		height: height,
		logger: config.Logger,
	}, nil
}

// Close releases database resources. Tiles are discarded unless Finalize was called.
func (w *Writer) Close() error {
	var rollbackErr error
	if w.tx != nil {
		rollbackErr = w.tx.Rollback()
	}
	return errors.Join(w.stmt.Close(), rollbackErr, w.db.Close())
}

func (w *Writer) WriteTile(p tilemap.Point, kind tilemap.Kind) error {
	if p.X < 0 || p.Y < 0 || p.X >= w.width || p.Y >= w.height {
		return fmt.Errorf("%w: %v outside %dx%d", ErrOutOfBounds, p, w.width, w.height)
	}

	code, err := tileCode(w.curve, p)
	if err != nil {
		return err
	}

	_, err = w.stmt.Exec(code, p.X, p.Y, string(kind))
	return err
}

// WriteMap writes all tiles of m.
func (w *Writer) WriteMap(m *tilemap.Map) error {
	return m.VisitTiles(w.WriteTile)
}

// Finalize commits written tiles and creates indices.
// It must be called before closing the Writer.
func (w *Writer) Finalize() error {
	if w.tx == nil {
		panic("img2map: finalize called twice")
	}

	w.logger.Debug("img2map: commit")
	err := w.tx.Commit()
	w.tx = nil
	if err != nil {
		return err
	}

	w.logger.Debug("img2map: creating index")
	_, err = w.db.Exec(`
		CREATE UNIQUE INDEX tile_index ON tiles (x, y);
		CREATE INDEX tile_code_index ON tiles (tile_code);
	`)

	w.logger.Debug("img2map: done!")
	return err
}

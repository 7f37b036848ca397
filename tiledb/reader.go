package tiledb

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/eak1mov/go-img2map/tilemap"
)

// Reader implements tilemap.Visitor interface for tile databases.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader creates a new Reader for the given database file path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT kind FROM tiles WHERE x = ? AND y = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadSize returns the image size recorded in metadata.
func (r *Reader) ReadSize() (width, height int, err error) {
	metadata, err := r.ReadMetadata()
	if err != nil {
		return 0, 0, err
	}

	width, err = strconv.Atoi(metadata[MetadataWidth])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, MetadataWidth, err)
	}
	height, err = strconv.Atoi(metadata[MetadataHeight])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, MetadataHeight, err)
	}
	return width, height, nil
}

// ReadTile returns the kind of the tile at p, or false if the tile is normal floor.
func (r *Reader) ReadTile(p tilemap.Point) (tilemap.Kind, bool, error) {
	var kind string
	if err := r.stmt.QueryRow(p.X, p.Y).Scan(&kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return tilemap.Kind(kind), true, nil
}

// VisitTiles visits tiles in Hilbert curve order.
func (r *Reader) VisitTiles(visitor func(tilemap.Point, tilemap.Kind) error) error {
	rows, err := r.db.Query("SELECT x, y, kind FROM tiles ORDER BY tile_code")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p tilemap.Point
		var kind string

		if err := rows.Scan(&p.X, &p.Y, &kind); err != nil {
			return err
		}

		if err := visitor(p, tilemap.Kind(kind)); err != nil {
			return err
		}
	}

	return rows.Err()
}

// ReadMap reads all tiles into a new map.
func (r *Reader) ReadMap() (*tilemap.Map, error) {
	return tilemap.Collect(r)
}

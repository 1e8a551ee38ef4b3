// Package library persists scanned embedded-cue playlists in a sqlite
// index, so repeated scans and queries don't have to re-probe files.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/simonhull/embcue/internal/types"
)

// Store is a sqlite-backed index of containers and their cue tracks.
type Store struct {
	db *sql.DB
}

// Container is one indexed media file.
type Container struct {
	Path      string
	ModTime   time.Time
	TrackNum  int
	ScannedAt time.Time
}

// Open opens (and if necessary creates) the index database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time keeps in-memory databases coherent too.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS containers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			scanned_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE TABLE IF NOT EXISTS tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			container_id INTEGER NOT NULL REFERENCES containers(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			title TEXT,
			artist TEXT,
			album TEXT,
			start_ms INTEGER NOT NULL,
			end_ms INTEGER NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_container ON tracks(container_id, position);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplacePlaylist stores the tracks for a container, replacing whatever
// a previous scan recorded for the same path. The whole replacement is
// one transaction.
func (s *Store) ReplacePlaylist(ctx context.Context, path string, mtime time.Time, tracks []*types.Track) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM containers WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete previous scan: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO containers (path, mtime) VALUES (?, ?)`,
		path, mtime.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert container: %w", err)
	}
	containerID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("container id: %w", err)
	}

	for i, track := range tracks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tracks (container_id, number, title, artist, album, start_ms, end_ms, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			containerID,
			track.Number,
			track.Tags.Title,
			track.Tags.Artist,
			track.Tags.Album,
			track.Start.Milliseconds(),
			track.End.Milliseconds(),
			i,
		)
		if err != nil {
			return fmt.Errorf("insert track %d: %w", track.Number, err)
		}
	}

	return tx.Commit()
}

// Containers lists every indexed container with its track count, in
// path order.
func (s *Store) Containers(ctx context.Context) ([]Container, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.path, c.mtime, c.scanned_at, COUNT(t.id)
		FROM containers c
		LEFT JOIN tracks t ON t.container_id = c.id
		GROUP BY c.id
		ORDER BY c.path`)
	if err != nil {
		return nil, fmt.Errorf("query containers: %w", err)
	}
	defer rows.Close()

	var out []Container
	for rows.Next() {
		var c Container
		var mtime, scanned int64
		if err := rows.Scan(&c.Path, &mtime, &scanned, &c.TrackNum); err != nil {
			return nil, fmt.Errorf("scan container row: %w", err)
		}
		c.ModTime = time.Unix(mtime, 0)
		c.ScannedAt = time.Unix(scanned, 0)
		out = append(out, c)
	}

	return out, rows.Err()
}

// Tracks returns the indexed tracks of one container in playlist order.
// The container's path is not required to still exist on disk.
func (s *Store) Tracks(ctx context.Context, path string) ([]*types.Track, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.number, t.title, t.artist, t.album, t.start_ms, t.end_ms
		FROM tracks t
		JOIN containers c ON c.id = t.container_id
		WHERE c.path = ?
		ORDER BY t.position`, path)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var out []*types.Track
	for rows.Next() {
		var t types.Track
		var startMS, endMS int64
		if err := rows.Scan(&t.Number, &t.Tags.Title, &t.Tags.Artist, &t.Tags.Album, &startMS, &endMS); err != nil {
			return nil, fmt.Errorf("scan track row: %w", err)
		}
		t.URI = filepath.Base(path)
		t.Start = time.Duration(startMS) * time.Millisecond
		t.End = time.Duration(endMS) * time.Millisecond
		out = append(out, &t)
	}

	return out, rows.Err()
}

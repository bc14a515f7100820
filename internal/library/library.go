// Package library manages the local saved-albums bookmark list.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Library stores saved albums in SQLite
type Library struct {
	db *sql.DB
}

// SavedAlbum is a locally bookmarked album
type SavedAlbum struct {
	ID      string    // Spotify album ID
	Name    string    // Album name as saved (editable)
	Artist  string    // Artist name as saved (editable)
	Notes   string    // Free-form user notes
	SavedAt time.Time // When the bookmark was created or last updated
}

// ErrNotFound is returned when no saved album matches the given ID.
var ErrNotFound = errors.New("library: album not found")

// Validate checks the fields the save form requires
func (a *SavedAlbum) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("library: album ID is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("library: album name is required")
	}
	if strings.TrimSpace(a.Artist) == "" {
		return fmt.Errorf("library: artist name is required")
	}
	return nil
}

// Open creates a library backed by SQLite at dbPath
func Open(dbPath string) (*Library, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is plenty
	// for this workload
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS saved_albums (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			saved_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_saved_at ON saved_albums(saved_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Save inserts a bookmark, or replaces an existing bookmark with the same
// album ID. Fields are trimmed before storing.
func (l *Library) Save(ctx context.Context, album SavedAlbum) error {
	if err := album.Validate(); err != nil {
		return err
	}

	savedAt := album.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	query := `
		INSERT INTO saved_albums (id, name, artist, notes, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			artist = excluded.artist,
			notes = excluded.notes,
			saved_at = excluded.saved_at
	`

	_, err := l.db.ExecContext(ctx, query,
		album.ID,
		strings.TrimSpace(album.Name),
		strings.TrimSpace(album.Artist),
		strings.TrimSpace(album.Notes),
		savedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save album: %w", err)
	}

	return nil
}

// Get returns the saved album with the given ID
func (l *Library) Get(ctx context.Context, id string) (*SavedAlbum, error) {
	query := `
		SELECT id, name, artist, notes, saved_at
		FROM saved_albums
		WHERE id = ?
	`

	var album SavedAlbum
	var savedAt int64

	err := l.db.QueryRowContext(ctx, query, id).Scan(
		&album.ID, &album.Name, &album.Artist, &album.Notes, &savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	album.SavedAt = time.Unix(savedAt, 0)
	return &album, nil
}

// List returns all saved albums, most recently saved first
func (l *Library) List(ctx context.Context) ([]SavedAlbum, error) {
	query := `
		SELECT id, name, artist, notes, saved_at
		FROM saved_albums
		ORDER BY saved_at DESC, id ASC
	`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer rows.Close()

	var albums []SavedAlbum
	for rows.Next() {
		var album SavedAlbum
		var savedAt int64
		if err := rows.Scan(&album.ID, &album.Name, &album.Artist, &album.Notes, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		album.SavedAt = time.Unix(savedAt, 0)
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate albums: %w", err)
	}

	return albums, nil
}

// Remove deletes the saved album with the given ID
func (l *Library) Remove(ctx context.Context, id string) error {
	result, err := l.db.ExecContext(ctx, "DELETE FROM saved_albums WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove album: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of saved albums
func (l *Library) Count(ctx context.Context) (int, error) {
	var count int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM saved_albums").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return count, nil
}

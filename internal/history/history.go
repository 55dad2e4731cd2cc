// Package history persists listening state across runs: recently played
// playlists and the last volume levels. Recording is fire-and-forget;
// a storage failure must never block or roll back playback.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "serene"
	dbFileName = "serene.db"

	recentLimit = 50
)

// Store holds the history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database under the XDG data dir.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the history database at an explicit path.
func OpenAt(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS recently_played (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			played_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_played_at ON recently_played(played_at);

		CREATE TABLE IF NOT EXISTS volume_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			primary_volume REAL NOT NULL DEFAULT 1.0,
			background_volume REAL NOT NULL DEFAULT 0.5
		);
	`)
	return err
}

// Entry is one recently-played record.
type Entry struct {
	PlaylistID int64
	Title      string
	PlayedAt   time.Time
}

// RecordPlay records that a playlist began playing. Older entries beyond
// the retention limit are pruned.
func (s *Store) RecordPlay(playlistID int64, title string) error {
	_, err := s.db.Exec(
		`INSERT INTO recently_played (playlist_id, title, played_at) VALUES (?, ?, ?)`,
		playlistID, title, time.Now().Unix(),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		DELETE FROM recently_played WHERE id NOT IN (
			SELECT id FROM recently_played ORDER BY played_at DESC, id DESC LIMIT ?
		)`, recentLimit)
	return err
}

// RecentlyPlayed returns the most recent plays, newest first.
func (s *Store) RecentlyPlayed(limit int) ([]Entry, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	rows, err := s.db.Query(`
		SELECT playlist_id, title, played_at
		FROM recently_played
		ORDER BY played_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var playedAt int64
		if err := rows.Scan(&e.PlaylistID, &e.Title, &playedAt); err != nil {
			return nil, err
		}
		e.PlayedAt = time.Unix(playedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// VolumeState represents the saved volume levels.
type VolumeState struct {
	Primary    float64
	Background float64
}

// GetVolumes returns the saved volume levels, or defaults if none saved.
func (s *Store) GetVolumes() (*VolumeState, error) {
	var v VolumeState
	row := s.db.QueryRow(`SELECT primary_volume, background_volume FROM volume_state WHERE id = 1`)
	err := row.Scan(&v.Primary, &v.Background)
	if err == sql.ErrNoRows {
		return &VolumeState{Primary: 1.0, Background: 0.5}, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SaveVolumes persists the volume levels.
func (s *Store) SaveVolumes(primary, background float64) error {
	_, err := s.db.Exec(`
		INSERT INTO volume_state (id, primary_volume, background_volume)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			primary_volume = excluded.primary_volume,
			background_volume = excluded.background_volume
	`, primary, background)
	return err
}

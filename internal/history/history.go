// Package history manages the watch history in a local sqlite database.
// Entries are keyed by content URL plus season/episode titles — the site
// exposes no stable numeric identifiers, so the title pair doubles as the
// stored selection key for resuming playback.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"klon/internal/config"
	"klon/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	url           TEXT NOT NULL,
	title         TEXT NOT NULL,
	player_url    TEXT NOT NULL DEFAULT '',
	season_title  TEXT NOT NULL DEFAULT '',
	episode_title TEXT NOT NULL DEFAULT '',
	position      REAL NOT NULL DEFAULT 0,
	duration      REAL NOT NULL DEFAULT 0,
	updated_at    INTEGER NOT NULL,
	PRIMARY KEY (url, season_title, episode_title)
);`

// Store is a handle to the watch-history database.
type Store struct {
	db *sql.DB
}

// Open opens the history database at the default XDG location, creating it
// if needed.
func Open() (*Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens (or creates) a history database at path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all entries, most recently watched first.
func (s *Store) List() ([]media.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT url, title, player_url, season_title, episode_title, position, duration
		FROM history ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var e media.HistoryEntry
		if err := rows.Scan(&e.URL, &e.Title, &e.PlayerURL, &e.SeasonTitle, &e.EpisodeTitle, &e.Position, &e.Duration); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Save inserts or updates the entry for its URL + title pair key.
func (s *Store) Save(e media.HistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO history (url, title, player_url, season_title, episode_title, position, duration, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url, season_title, episode_title) DO UPDATE SET
			title      = excluded.title,
			player_url = excluded.player_url,
			position   = excluded.position,
			duration   = excluded.duration,
			updated_at = excluded.updated_at`,
		e.URL, e.Title, e.PlayerURL, e.SeasonTitle, e.EpisodeTitle, e.Position, e.Duration,
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// Remove deletes an entry.
func (s *Store) Remove(url, seasonTitle, episodeTitle string) error {
	_, err := s.db.Exec(`
		DELETE FROM history WHERE url = ? AND season_title = ? AND episode_title = ?`,
		url, seasonTitle, episodeTitle)
	if err != nil {
		return fmt.Errorf("removing history entry: %w", err)
	}
	return nil
}

// Position returns the saved playback position for a key, or 0 if none.
func (s *Store) Position(url, seasonTitle, episodeTitle string) (float64, error) {
	var pos float64
	err := s.db.QueryRow(`
		SELECT position FROM history WHERE url = ? AND season_title = ? AND episode_title = ?`,
		url, seasonTitle, episodeTitle).Scan(&pos)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying position: %w", err)
	}
	return pos, nil
}

// FormatForDisplay creates display strings for fzf selection from history
// entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.Title
		if e.EpisodeTitle != "" {
			display = fmt.Sprintf("%s: %s, %s", e.Title, e.SeasonTitle, e.EpisodeTitle)
		}
		if e.Position > 0 && e.Duration > 0 {
			display += fmt.Sprintf(" [%.0f%%]", e.Position/e.Duration*100)
		}
		items = append(items, display)
	}
	return items
}

// Package store persists collected artist, track, and vocabulary-metric
// rows in a local SQLite database. Lyric text is never written: only the
// metrics derived from it are kept.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for analysis queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func createTables(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS Artist (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  popularity INTEGER NOT NULL DEFAULT 0,
  followers INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  mbid TEXT,
  begin_year TEXT,
  end_year TEXT,
  updated DATETIME
);

CREATE TABLE IF NOT EXISTS Track (
  id TEXT PRIMARY KEY,
  artist TEXT NOT NULL,
  title TEXT NOT NULL,
  album TEXT,
  release_date TEXT,
  duration_ms INTEGER NOT NULL DEFAULT 0,
  popularity INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY (artist) REFERENCES Artist(id)
);

CREATE TABLE IF NOT EXISTS TrackMetrics (
  track TEXT PRIMARY KEY,
  total_words INTEGER NOT NULL,
  unique_words INTEGER NOT NULL,
  type_token_ratio REAL NOT NULL,
  average_word_length REAL NOT NULL,
  lexical_density REAL NOT NULL,
  lyrics_source TEXT,
  analyzed DATETIME,
  FOREIGN KEY (track) REFERENCES Track(id)
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

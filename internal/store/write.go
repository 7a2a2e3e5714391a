package store

import (
	"fmt"
	"time"

	"github.com/bplemons/flow-metrics/internal/vocab"
)

// Artist is the persisted artist row. MBID and active years come from the
// MusicBrainz match and may be empty when no match was found.
type Artist struct {
	ID         string
	Name       string
	Popularity int
	Followers  int64
	ImageURL   string
	MBID       string
	BeginYear  string
	EndYear    string
}

// Track is the persisted track row.
type Track struct {
	ID          string
	ArtistID    string
	Title       string
	Album       string
	ReleaseDate string
	DurationMS  int
	Popularity  int
}

// SaveArtist inserts or refreshes an artist snapshot. Upserts keep the
// collection pipeline restartable. MusicBrainz fields are only overwritten
// when the new row carries them, so a run without a match keeps the old
// values.
func (s *Store) SaveArtist(a Artist) error {
	_, err := s.db.Exec(`
		INSERT INTO Artist (id, name, popularity, followers, image_url, mbid, begin_year, end_year, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  popularity = excluded.popularity,
		  followers = excluded.followers,
		  image_url = excluded.image_url,
		  mbid = CASE WHEN excluded.mbid != '' THEN excluded.mbid ELSE Artist.mbid END,
		  begin_year = CASE WHEN excluded.begin_year != '' THEN excluded.begin_year ELSE Artist.begin_year END,
		  end_year = CASE WHEN excluded.end_year != '' THEN excluded.end_year ELSE Artist.end_year END,
		  updated = excluded.updated`,
		a.ID, a.Name, a.Popularity, a.Followers, a.ImageURL, a.MBID, a.BeginYear, a.EndYear, time.Now())
	if err != nil {
		return fmt.Errorf("saving artist %q: %w", a.ID, err)
	}
	return nil
}

// SaveTracks inserts a batch of tracks transactionally.
func (s *Store) SaveTracks(tracks []Track) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tracks {
		_, err := tx.Exec(`
			INSERT INTO Track (id, artist, title, album, release_date, duration_ms, popularity)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			  title = excluded.title,
			  album = excluded.album,
			  release_date = excluded.release_date,
			  duration_ms = excluded.duration_ms,
			  popularity = excluded.popularity`,
			t.ID, t.ArtistID, t.Title, t.Album, t.ReleaseDate, t.DurationMS, t.Popularity)
		if err != nil {
			return fmt.Errorf("saving track %q: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveMetrics records the vocabulary metrics computed for one track. The
// lyric text itself is discarded; source names where it was fetched from.
func (s *Store) SaveMetrics(trackID string, m vocab.Metrics, source string) error {
	_, err := s.db.Exec(`
		INSERT INTO TrackMetrics (track, total_words, unique_words, type_token_ratio, average_word_length, lexical_density, lyrics_source, analyzed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(track) DO UPDATE SET
		  total_words = excluded.total_words,
		  unique_words = excluded.unique_words,
		  type_token_ratio = excluded.type_token_ratio,
		  average_word_length = excluded.average_word_length,
		  lexical_density = excluded.lexical_density,
		  lyrics_source = excluded.lyrics_source,
		  analyzed = excluded.analyzed`,
		trackID, m.TotalWords, m.UniqueWords, m.TypeTokenRatio, m.AverageWordLength, m.LexicalDensity, source, time.Now())
	if err != nil {
		return fmt.Errorf("saving metrics for track %q: %w", trackID, err)
	}
	return nil
}

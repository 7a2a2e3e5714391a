package store

import (
	"database/sql"
	"fmt"
	"time"
)

// HasMetrics reports whether metrics were already computed for the track.
// The collection pipeline uses it to skip work on resumed runs.
func (s *Store) HasMetrics(trackID string) (bool, error) {
	row := s.db.QueryRow("SELECT track FROM TrackMetrics WHERE track = ?", trackID)
	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking metrics for track %q: %w", trackID, err)
	}
	return true, nil
}

// GetArtistByName returns the stored artist whose name matches exactly, or
// false when no such artist was collected.
func (s *Store) GetArtistByName(name string) (Artist, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, name, popularity, followers,
		       COALESCE(image_url, ''), COALESCE(mbid, ''),
		       COALESCE(begin_year, ''), COALESCE(end_year, '')
		FROM Artist WHERE name = ? COLLATE NOCASE`, name)

	var a Artist
	err := row.Scan(&a.ID, &a.Name, &a.Popularity, &a.Followers,
		&a.ImageURL, &a.MBID, &a.BeginYear, &a.EndYear)
	if err == sql.ErrNoRows {
		return Artist{}, false, nil
	}
	if err != nil {
		return Artist{}, false, fmt.Errorf("getting artist %q: %w", name, err)
	}
	return a, true, nil
}

// ListArtists returns every collected artist, ordered by name.
func (s *Store) ListArtists() ([]Artist, error) {
	rows, err := s.db.Query(`
		SELECT id, name, popularity, followers,
		       COALESCE(image_url, ''), COALESCE(mbid, ''),
		       COALESCE(begin_year, ''), COALESCE(end_year, '')
		FROM Artist ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Popularity, &a.Followers,
			&a.ImageURL, &a.MBID, &a.BeginYear, &a.EndYear); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// GetArtistUpdated returns when the artist row was last refreshed, or the
// zero time if the artist is not stored.
func (s *Store) GetArtistUpdated(artistID string) (time.Time, error) {
	row := s.db.QueryRow("SELECT updated FROM Artist WHERE id = ?", artistID)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting artist updated: %w", err)
	}
	return t.Time, nil
}

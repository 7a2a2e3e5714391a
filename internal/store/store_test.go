package store

import (
	"path/filepath"
	"testing"

	"github.com/bplemons/flow-metrics/internal/vocab"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "flowmetrics.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSaveArtist(t *testing.T) {
	s := createTestDb(t)

	a := Artist{
		ID:         "spotify-1",
		Name:       "Nas",
		Popularity: 80,
		Followers:  5000000,
		MBID:       "mbid-1",
		BeginYear:  "1973",
	}
	if err := s.SaveArtist(a); err != nil {
		t.Fatalf("SaveArtist: %v", err)
	}

	got, ok, err := s.GetArtistByName("nas")
	if err != nil {
		t.Fatalf("GetArtistByName: %v", err)
	}
	if !ok {
		t.Fatal("artist not found after save")
	}
	if got.ID != "spotify-1" || got.MBID != "mbid-1" {
		t.Errorf("unexpected artist: %+v", got)
	}
}

func TestSaveArtist_upsertKeepsMusicBrainzFields(t *testing.T) {
	s := createTestDb(t)

	a := Artist{ID: "spotify-1", Name: "Nas", MBID: "mbid-1", BeginYear: "1973"}
	if err := s.SaveArtist(a); err != nil {
		t.Fatalf("SaveArtist: %v", err)
	}

	// A refresh without a MusicBrainz match must not erase the old match.
	refresh := Artist{ID: "spotify-1", Name: "Nas", Popularity: 85}
	if err := s.SaveArtist(refresh); err != nil {
		t.Fatalf("SaveArtist (refresh): %v", err)
	}

	got, _, err := s.GetArtistByName("Nas")
	if err != nil {
		t.Fatalf("GetArtistByName: %v", err)
	}
	if got.MBID != "mbid-1" || got.BeginYear != "1973" {
		t.Errorf("refresh dropped MusicBrainz fields: %+v", got)
	}
	if got.Popularity != 85 {
		t.Errorf("Popularity = %d, want 85", got.Popularity)
	}
}

func TestSaveTracks(t *testing.T) {
	s := createTestDb(t)

	if err := s.SaveArtist(Artist{ID: "artist-1", Name: "Nas"}); err != nil {
		t.Fatalf("SaveArtist: %v", err)
	}

	tracks := []Track{
		{ID: "track-1", ArtistID: "artist-1", Title: "N.Y. State of Mind", Album: "Illmatic"},
		{ID: "track-2", ArtistID: "artist-1", Title: "The World Is Yours", Album: "Illmatic"},
	}
	if err := s.SaveTracks(tracks); err != nil {
		t.Fatalf("SaveTracks: %v", err)
	}

	// Saving again must not duplicate rows.
	if err := s.SaveTracks(tracks); err != nil {
		t.Fatalf("SaveTracks (repeat): %v", err)
	}

	row := s.db.QueryRow("SELECT COUNT(*) FROM Track WHERE artist = ?", "artist-1")
	var count int
	if err := row.Scan(&count); err != nil {
		t.Fatalf("counting tracks: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d tracks, want 2", count)
	}
}

func TestSaveMetrics(t *testing.T) {
	s := createTestDb(t)

	if err := s.SaveArtist(Artist{ID: "artist-1", Name: "Nas"}); err != nil {
		t.Fatalf("SaveArtist: %v", err)
	}
	if err := s.SaveTracks([]Track{{ID: "track-1", ArtistID: "artist-1", Title: "Halftime"}}); err != nil {
		t.Fatalf("SaveTracks: %v", err)
	}

	has, err := s.HasMetrics("track-1")
	if err != nil {
		t.Fatalf("HasMetrics: %v", err)
	}
	if has {
		t.Error("HasMetrics = true before any save")
	}

	m := vocab.Metrics{
		TotalWords:        400,
		UniqueWords:       250,
		TypeTokenRatio:    0.625,
		AverageWordLength: 4.2,
		LexicalDensity:    0.55,
	}
	if err := s.SaveMetrics("track-1", m, "genius"); err != nil {
		t.Fatalf("SaveMetrics: %v", err)
	}

	has, err = s.HasMetrics("track-1")
	if err != nil {
		t.Fatalf("HasMetrics: %v", err)
	}
	if !has {
		t.Error("HasMetrics = false after save")
	}

	row := s.db.QueryRow("SELECT type_token_ratio, lyrics_source FROM TrackMetrics WHERE track = ?", "track-1")
	var ttr float64
	var source string
	if err := row.Scan(&ttr, &source); err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	if ttr != 0.625 || source != "genius" {
		t.Errorf("stored metrics ttr=%v source=%q", ttr, source)
	}
}

func TestListArtists(t *testing.T) {
	s := createTestDb(t)

	for _, a := range []Artist{
		{ID: "a2", Name: "Rakim"},
		{ID: "a1", Name: "Nas"},
	} {
		if err := s.SaveArtist(a); err != nil {
			t.Fatalf("SaveArtist: %v", err)
		}
	}

	artists, err := s.ListArtists()
	if err != nil {
		t.Fatalf("ListArtists: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("got %d artists, want 2", len(artists))
	}
	if artists[0].Name != "Nas" || artists[1].Name != "Rakim" {
		t.Errorf("artists not ordered by name: %v, %v", artists[0].Name, artists[1].Name)
	}
}

func TestGetArtistUpdated(t *testing.T) {
	s := createTestDb(t)

	updated, err := s.GetArtistUpdated("missing")
	if err != nil {
		t.Fatalf("GetArtistUpdated: %v", err)
	}
	if !updated.IsZero() {
		t.Errorf("updated = %v for missing artist, want zero", updated)
	}

	if err := s.SaveArtist(Artist{ID: "a1", Name: "Nas"}); err != nil {
		t.Fatalf("SaveArtist: %v", err)
	}
	updated, err = s.GetArtistUpdated("a1")
	if err != nil {
		t.Fatalf("GetArtistUpdated: %v", err)
	}
	if updated.IsZero() {
		t.Error("updated should be set after save")
	}
}

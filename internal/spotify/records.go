package spotify

import (
	"fmt"

	"github.com/bplemons/flow-metrics/internal/errs"
)

// Artist is an immutable snapshot of a Spotify artist, fetched per query.
type Artist struct {
	ID         string
	Name       string
	Genres     []string
	Popularity int
	Followers  int64
	ImageURL   string
}

// ArtistRef is the lightweight artist reference attached to albums and
// tracks. A track carries one ref per credited artist, features included.
type ArtistRef struct {
	ID   string
	Name string
}

// Album is a Spotify release as returned by the artist-albums endpoint.
type Album struct {
	ID                   string
	Name                 string
	Type                 ReleaseType
	ReleaseDate          string
	ReleaseDatePrecision string
	TotalTracks          int
	Artists              []ArtistRef
	ImageURL             string
}

// Track is a Spotify track record. Album fields are populated when the
// source response carries them; the discography iterator fills them in from
// the enclosing album.
type Track struct {
	ID          string
	Title       string
	AlbumID     string
	AlbumName   string
	ReleaseDate string
	Artists     []ArtistRef
	DurationMS  int
	Popularity  int
	Explicit    bool
	DiscNumber  int
	TrackNumber int
}

// ReleaseType filters discography listings.
type ReleaseType string

const (
	ReleaseAlbum       ReleaseType = "album"
	ReleaseSingle      ReleaseType = "single"
	ReleaseCompilation ReleaseType = "compilation"
	ReleaseAppearsOn   ReleaseType = "appears_on"
)

// ParseReleaseType validates a user-supplied release-type string.
func ParseReleaseType(s string) (ReleaseType, error) {
	switch ReleaseType(s) {
	case ReleaseAlbum, ReleaseSingle, ReleaseCompilation, ReleaseAppearsOn:
		return ReleaseType(s), nil
	}
	return "", fmt.Errorf("unknown release type %q (expected album, single, compilation, or appears_on)", s)
}

func artistFromWire(w wireArtist) (Artist, error) {
	var missing []string
	if w.ID == "" {
		missing = append(missing, "id")
	}
	if w.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return Artist{}, &errs.ValidationError{Record: "spotify artist", Fields: missing}
	}

	a := Artist{
		ID:         w.ID,
		Name:       w.Name,
		Genres:     w.Genres,
		Popularity: w.Popularity,
		Followers:  w.Followers.Total,
	}
	if len(w.Images) > 0 {
		a.ImageURL = w.Images[0].URL
	}
	return a, nil
}

func albumFromWire(w wireAlbum) (Album, error) {
	var missing []string
	if w.ID == "" {
		missing = append(missing, "id")
	}
	if w.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return Album{}, &errs.ValidationError{Record: "spotify album", Fields: missing}
	}

	a := Album{
		ID:                   w.ID,
		Name:                 w.Name,
		Type:                 ReleaseType(w.AlbumType),
		ReleaseDate:          w.ReleaseDate,
		ReleaseDatePrecision: w.ReleaseDatePrecision,
		TotalTracks:          w.TotalTracks,
		Artists:              refsFromWire(w.Artists),
	}
	// album_group distinguishes appears_on entries in discography listings.
	if w.AlbumGroup == string(ReleaseAppearsOn) {
		a.Type = ReleaseAppearsOn
	}
	if len(w.Images) > 0 {
		a.ImageURL = w.Images[0].URL
	}
	return a, nil
}

// trackFromWire maps a track response. album provides release context when
// the wire track is a simplified object (album-tracks listings omit it).
func trackFromWire(w wireTrack, album *Album) (Track, error) {
	var missing []string
	if w.ID == "" {
		missing = append(missing, "id")
	}
	if w.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return Track{}, &errs.ValidationError{Record: "spotify track", Fields: missing}
	}

	t := Track{
		ID:          w.ID,
		Title:       w.Name,
		Artists:     refsFromWire(w.Artists),
		DurationMS:  w.DurationMS,
		Popularity:  w.Popularity,
		Explicit:    w.Explicit,
		DiscNumber:  w.DiscNumber,
		TrackNumber: w.TrackNumber,
	}
	switch {
	case w.Album != nil:
		t.AlbumID = w.Album.ID
		t.AlbumName = w.Album.Name
		t.ReleaseDate = w.Album.ReleaseDate
	case album != nil:
		t.AlbumID = album.ID
		t.AlbumName = album.Name
		t.ReleaseDate = album.ReleaseDate
	}
	return t, nil
}

func refsFromWire(ws []wireArtistRef) []ArtistRef {
	refs := make([]ArtistRef, len(ws))
	for i, w := range ws {
		refs[i] = ArtistRef{ID: w.ID, Name: w.Name}
	}
	return refs
}

// Package musixmatch wraps the Musixmatch API as a second lyrics source.
// Musixmatch serves lyric text directly (no page scraping), but wraps every
// response in a message envelope whose header carries the real status code.
// Lyric text is held in memory only and never persisted.
package musixmatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

const apiURL = "https://api.musixmatch.com/ws/1.1"

// Track is a validated Musixmatch track record.
type Track struct {
	ID         int
	Title      string
	ArtistName string
	AlbumName  string
	Rating     int
	HasLyrics  bool
	Explicit   bool
}

// Lyrics is the lyric text for one track. Body has the provider's tracking
// banner stripped so it never leaks into word counts; Copyright keeps the
// attribution notice.
type Lyrics struct {
	ID        int
	Body      string
	Copyright string
	Language  string
}

// Client calls the Musixmatch API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// New creates a client using the given API key.
func New(apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: apiURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// SearchTracks returns tracks matching the artist and title, highest rated
// first. Zero matches yield an empty slice and a nil error.
func (c *Client) SearchTracks(ctx context.Context, artistName, trackName string) ([]Track, error) {
	params := url.Values{}
	params.Set("q_artist", artistName)
	params.Set("q_track", trackName)
	params.Set("s_track_rating", "desc")
	params.Set("page_size", "10")

	var result wireTrackSearch
	if err := c.getJSON(ctx, "/track.search", params, &result); err != nil {
		return nil, fmt.Errorf("searching tracks %q %q: %w", artistName, trackName, err)
	}

	tracks := []Track{}
	for _, item := range result.Message.Body.TrackList {
		track, err := trackFromWire(item.Track)
		if err != nil {
			return nil, fmt.Errorf("searching tracks %q %q: %w", artistName, trackName, err)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// GetLyrics fetches the lyric text for a track by Musixmatch ID.
func (c *Client) GetLyrics(ctx context.Context, trackID int) (Lyrics, error) {
	params := url.Values{}
	params.Set("track_id", strconv.Itoa(trackID))

	var result wireLyricsGet
	if err := c.getJSON(ctx, "/track.lyrics.get", params, &result); err != nil {
		if errs.HasStatus(err, http.StatusNotFound) {
			return Lyrics{}, &errs.NotFoundError{Kind: "musixmatch lyrics", ID: strconv.Itoa(trackID)}
		}
		return Lyrics{}, fmt.Errorf("getting lyrics for track %d: %w", trackID, err)
	}
	return lyricsFromWire(result.Message.Body.Lyrics)
}

type wireTrack struct {
	TrackID    int    `json:"track_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name"`
	Rating     int    `json:"track_rating"`
	HasLyrics  int    `json:"has_lyrics"`
	Explicit   int    `json:"explicit"`
}

type wireLyrics struct {
	LyricsID  int    `json:"lyrics_id"`
	Body      string `json:"lyrics_body"`
	Copyright string `json:"lyrics_copyright"`
	Language  string `json:"lyrics_language"`
}

type wireHeader struct {
	StatusCode int    `json:"status_code"`
	Hint       string `json:"hint"`
}

type wireTrackSearch struct {
	Message struct {
		Header wireHeader `json:"header"`
		Body   struct {
			TrackList []struct {
				Track wireTrack `json:"track"`
			} `json:"track_list"`
		} `json:"body"`
	} `json:"message"`
}

type wireLyricsGet struct {
	Message struct {
		Header wireHeader `json:"header"`
		Body   struct {
			Lyrics wireLyrics `json:"lyrics"`
		} `json:"body"`
	} `json:"message"`
}

func trackFromWire(w wireTrack) (Track, error) {
	var missing []string
	if w.TrackID == 0 {
		missing = append(missing, "track_id")
	}
	if w.TrackName == "" {
		missing = append(missing, "track_name")
	}
	if w.ArtistName == "" {
		missing = append(missing, "artist_name")
	}
	if len(missing) > 0 {
		return Track{}, &errs.ValidationError{Record: "musixmatch track", Fields: missing}
	}

	return Track{
		ID:         w.TrackID,
		Title:      w.TrackName,
		ArtistName: w.ArtistName,
		AlbumName:  w.AlbumName,
		Rating:     w.Rating,
		HasLyrics:  w.HasLyrics == 1,
		Explicit:   w.Explicit == 1,
	}, nil
}

func lyricsFromWire(w wireLyrics) (Lyrics, error) {
	var missing []string
	if w.LyricsID == 0 {
		missing = append(missing, "lyrics_id")
	}
	if w.Body == "" {
		missing = append(missing, "lyrics_body")
	}
	if len(missing) > 0 {
		return Lyrics{}, &errs.ValidationError{Record: "musixmatch lyrics", Fields: missing}
	}

	return Lyrics{
		ID:        w.LyricsID,
		Body:      stripTrackingBanner(w.Body),
		Copyright: w.Copyright,
		Language:  w.Language,
	}, nil
}

// stripTrackingBanner drops the "******* This Lyrics is NOT..." footer the
// API appends to every body, which would otherwise inflate word counts.
func stripTrackingBanner(body string) string {
	if idx := strings.Index(body, "*******"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// getJSON fetches and decodes one envelope. The HTTP layer usually answers
// 200 even for failures; the envelope header carries the real status.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out envelope) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("apikey", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return &errs.UpstreamError{Source: "musixmatch", Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &errs.UpstreamError{
					Source:     "musixmatch",
					StatusCode: resp.StatusCode,
					Err:        fmt.Errorf("GET %s", path),
				}
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.RetryIf(func(err error) bool {
			var ue *errs.UpstreamError
			return errors.As(err, &ue) && ue.StatusCode/100 == 5
		}),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &errs.UpstreamError{Source: "musixmatch", Err: fmt.Errorf("decoding %s: %w", path, err)}
	}

	if header := out.header(); header.StatusCode != http.StatusOK {
		return &errs.UpstreamError{
			Source:     "musixmatch",
			StatusCode: header.StatusCode,
			Err:        fmt.Errorf("GET %s: %s", path, header.Hint),
		}
	}
	return nil
}

// envelope lets getJSON check the in-band status header on any response.
type envelope interface {
	header() wireHeader
}

func (w *wireTrackSearch) header() wireHeader { return w.Message.Header }
func (w *wireLyricsGet) header() wireHeader   { return w.Message.Header }

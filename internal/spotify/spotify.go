// Package spotify is a thin Spotify Web API client. It authenticates with
// the client-credentials flow, validates every response into typed records,
// and paginates discography listings behind lazy sequences.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

const (
	apiURL   = "https://api.spotify.com/v1"
	tokenURL = "https://accounts.spotify.com/api/token"

	maxPageSize = 50
)

// Client calls the Spotify Web API. Methods are safe for use by a single
// caller; the limiter spaces requests to stay inside Spotify's rate limits.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a client that fetches and refreshes tokens with the given
// application credentials.
func New(clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{
		http:    conf.Client(context.Background()),
		baseURL: apiURL,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// SearchArtists returns artists matching the query, best match first. A
// query with no matches returns an empty slice and a nil error.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "artist")
	params.Set("limit", strconv.Itoa(limit))

	var result wireSearch
	if err := c.getJSON(ctx, "/search", params, &result); err != nil {
		return nil, fmt.Errorf("searching artists %q: %w", query, err)
	}

	artists := []Artist{}
	for _, w := range result.Artists.Items {
		artist, err := artistFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("searching artists %q: %w", query, err)
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

// GetArtist looks up an artist by Spotify ID. An unknown or invalid ID fails
// with a NotFoundError.
func (c *Client) GetArtist(ctx context.Context, id string) (Artist, error) {
	var w wireArtist
	if err := c.getJSON(ctx, "/artists/"+url.PathEscape(id), nil, &w); err != nil {
		if errs.HasStatus(err, http.StatusNotFound) || errs.HasStatus(err, http.StatusBadRequest) {
			return Artist{}, &errs.NotFoundError{Kind: "spotify artist", ID: id}
		}
		return Artist{}, fmt.Errorf("getting artist %q: %w", id, err)
	}
	return artistFromWire(w)
}

// GetTrack looks up a track by Spotify ID.
func (c *Client) GetTrack(ctx context.Context, id string) (Track, error) {
	var w wireTrack
	if err := c.getJSON(ctx, "/tracks/"+url.PathEscape(id), nil, &w); err != nil {
		if errs.HasStatus(err, http.StatusNotFound) || errs.HasStatus(err, http.StatusBadRequest) {
			return Track{}, &errs.NotFoundError{Kind: "spotify track", ID: id}
		}
		return Track{}, fmt.Errorf("getting track %q: %w", id, err)
	}
	return trackFromWire(w, nil)
}

// TopTracks returns the artist's top tracks for a market (Spotify caps this
// at 10).
func (c *Client) TopTracks(ctx context.Context, artistID, market string) ([]Track, error) {
	if market == "" {
		market = "US"
	}
	params := url.Values{}
	params.Set("market", market)

	var result wireTopTracks
	err := c.getJSON(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", params, &result)
	if err != nil {
		if errs.HasStatus(err, http.StatusNotFound) || errs.HasStatus(err, http.StatusBadRequest) {
			return nil, &errs.NotFoundError{Kind: "spotify artist", ID: artistID}
		}
		return nil, fmt.Errorf("getting top tracks for %q: %w", artistID, err)
	}

	tracks := make([]Track, 0, len(result.Tracks))
	for _, w := range result.Tracks {
		track, err := trackFromWire(w, nil)
		if err != nil {
			return nil, fmt.Errorf("getting top tracks for %q: %w", artistID, err)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// getJSON performs one rate-limited GET and decodes the body. Responses in
// the 5xx range are retried; everything else surfaces immediately as an
// UpstreamError carrying the status code.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			resp, err := c.http.Do(req)
			if err != nil {
				return &errs.UpstreamError{Source: "spotify", Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &errs.UpstreamError{
					Source:     "spotify",
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
		return &errs.UpstreamError{Source: "spotify", Err: fmt.Errorf("decoding %s: %w", path, err)}
	}
	return nil
}

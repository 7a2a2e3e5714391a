// Package musicbrainz is a thin client for the MusicBrainz WS/2 API. Every
// request carries the identified User-Agent MusicBrainz requires, and the
// client holds itself to the documented one-request-per-second limit.
package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

const (
	apiURL = "https://musicbrainz.org/ws/2"

	maxPageSize = 100
)

// Client calls the MusicBrainz API.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// New creates a client identified as app/version (contact), per the
// MusicBrainz User-Agent policy.
func New(app, version, contact string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   apiURL,
		userAgent: fmt.Sprintf("%s/%s ( %s )", app, version, contact),
		limiter:   rate.NewLimiter(rate.Every(1*time.Second), 1),
	}
}

// SearchArtists returns artists matching the query, ordered by search score.
// Zero matches yield an empty slice and a nil error.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = 25
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	var result wireArtistSearch
	if err := c.getJSON(ctx, "/artist", params, &result); err != nil {
		return nil, fmt.Errorf("searching artists %q: %w", query, err)
	}

	artists := []Artist{}
	for _, w := range result.Artists {
		artist, err := artistFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("searching artists %q: %w", query, err)
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

// GetArtist looks up an artist by MBID. Unknown and malformed identifiers
// both fail with a NotFoundError (MusicBrainz answers 404 and 400
// respectively).
func (c *Client) GetArtist(ctx context.Context, mbid string) (Artist, error) {
	var w wireArtist
	if err := c.getJSON(ctx, "/artist/"+url.PathEscape(mbid), nil, &w); err != nil {
		if errs.HasStatus(err, http.StatusNotFound) || errs.HasStatus(err, http.StatusBadRequest) {
			return Artist{}, &errs.NotFoundError{Kind: "musicbrainz artist", ID: mbid}
		}
		return Artist{}, fmt.Errorf("getting artist %q: %w", mbid, err)
	}
	return artistFromWire(w)
}

// ReleaseGroups walks an artist's release groups, internally paginated,
// optionally restricted to one primary type (album, single, ep). The
// sequence is lazy and restartable.
func (c *Client) ReleaseGroups(ctx context.Context, artistMBID string, primaryType string) iter.Seq2[ReleaseGroup, error] {
	return func(yield func(ReleaseGroup, error) bool) {
		offset := 0
		for {
			params := url.Values{}
			params.Set("artist", artistMBID)
			params.Set("limit", strconv.Itoa(maxPageSize))
			params.Set("offset", strconv.Itoa(offset))
			if primaryType != "" {
				params.Set("type", primaryType)
			}

			var page wireReleaseGroupPage
			err := c.getJSON(ctx, "/release-group", params, &page)
			if err != nil {
				yield(ReleaseGroup{}, fmt.Errorf("listing release groups for %q: %w", artistMBID, err))
				return
			}

			for _, w := range page.ReleaseGroups {
				rg, err := releaseGroupFromWire(w)
				if err != nil {
					yield(ReleaseGroup{}, err)
					return
				}
				if !yield(rg, nil) {
					return
				}
			}

			offset += len(page.ReleaseGroups)
			if len(page.ReleaseGroups) == 0 || offset >= page.Count {
				return
			}
		}
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("fmt", "json")
	u := c.baseURL + path + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", c.userAgent)

			resp, err := c.http.Do(req)
			if err != nil {
				return &errs.UpstreamError{Source: "musicbrainz", Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &errs.UpstreamError{
					Source:     "musicbrainz",
					StatusCode: resp.StatusCode,
					Err:        fmt.Errorf("GET %s", path),
				}
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.RetryIf(func(err error) bool {
			// MusicBrainz reports throttling as 503.
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
		return &errs.UpstreamError{Source: "musicbrainz", Err: fmt.Errorf("decoding %s: %w", path, err)}
	}
	return nil
}

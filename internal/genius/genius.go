// Package genius wraps the Genius API for song lookup and scrapes lyric
// text from song pages (the API itself does not serve lyrics). Lyric text is
// held in memory only and never persisted; redistribution restrictions apply
// to the scraped content.
package genius

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

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

const apiURL = "https://api.genius.com"

// Song is a validated Genius song record. Lyrics are fetched separately via
// the song's page URL.
type Song struct {
	ID            int
	Title         string
	PrimaryArtist string
	URL           string
	ReleaseDate   string
}

// Client calls the Genius API and fetches lyric pages.
type Client struct {
	http        *http.Client
	baseURL     string
	accessToken string
	limiter     *rate.Limiter
}

// New creates a client using the given access token for API calls.
func New(accessToken string) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		baseURL:     apiURL,
		accessToken: accessToken,
		limiter:     rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// SearchSongs returns songs matching the query, best hit first. Zero hits
// yield an empty slice and a nil error.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]Song, error) {
	params := url.Values{}
	params.Set("q", query)

	var result wireSearch
	if err := c.getJSON(ctx, "/search", params, &result); err != nil {
		return nil, fmt.Errorf("searching songs %q: %w", query, err)
	}

	songs := []Song{}
	for _, hit := range result.Response.Hits {
		if hit.Type != "" && hit.Type != "song" {
			continue
		}
		song, err := songFromWire(hit.Result)
		if err != nil {
			return nil, fmt.Errorf("searching songs %q: %w", query, err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// GetSong looks up a song by Genius ID.
func (c *Client) GetSong(ctx context.Context, id int) (Song, error) {
	var result wireSong
	if err := c.getJSON(ctx, "/songs/"+strconv.Itoa(id), nil, &result); err != nil {
		if errs.HasStatus(err, http.StatusNotFound) {
			return Song{}, &errs.NotFoundError{Kind: "genius song", ID: strconv.Itoa(id)}
		}
		return Song{}, fmt.Errorf("getting song %d: %w", id, err)
	}
	return songFromWire(result.Response.Song)
}

// Lyrics fetches a song page and extracts its lyric text, one line per
// rendered line.
func (c *Client) Lyrics(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &errs.UpstreamError{Source: "genius", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &errs.UpstreamError{
			Source:     "genius",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("GET %s", pageURL),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &errs.UpstreamError{Source: "genius", Err: fmt.Errorf("parsing lyrics page: %w", err)}
	}

	containers := doc.Find("div[data-lyrics-container='true']")
	if containers.Length() == 0 {
		return "", &errs.UpstreamError{Source: "genius", Err: fmt.Errorf("no lyrics container on %s", pageURL)}
	}

	var parts []string
	containers.Each(func(_ int, s *goquery.Selection) {
		// Line breaks render as <br>; turn them back into newlines
		// before flattening to text.
		s.Find("br").Each(func(_ int, br *goquery.Selection) {
			br.ReplaceWithHtml("\n")
		})
		parts = append(parts, s.Text())
	})

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

type wireSongRecord struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	ReleaseDate   string `json:"release_date"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

type wireSearch struct {
	Response struct {
		Hits []struct {
			Type   string         `json:"type"`
			Result wireSongRecord `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

type wireSong struct {
	Response struct {
		Song wireSongRecord `json:"song"`
	} `json:"response"`
}

func songFromWire(w wireSongRecord) (Song, error) {
	var missing []string
	if w.ID == 0 {
		missing = append(missing, "id")
	}
	if w.Title == "" {
		missing = append(missing, "title")
	}
	if w.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return Song{}, &errs.ValidationError{Record: "genius song", Fields: missing}
	}

	return Song{
		ID:            w.ID,
		Title:         w.Title,
		PrimaryArtist: w.PrimaryArtist.Name,
		URL:           w.URL,
		ReleaseDate:   w.ReleaseDate,
	}, nil
}

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
			req.Header.Set("Authorization", "Bearer "+c.accessToken)

			resp, err := c.http.Do(req)
			if err != nil {
				return &errs.UpstreamError{Source: "genius", Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &errs.UpstreamError{
					Source:     "genius",
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
		return &errs.UpstreamError{Source: "genius", Err: fmt.Errorf("decoding %s: %w", path, err)}
	}
	return nil
}

package genius

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		http:        srv.Client(),
		baseURL:     srv.URL,
		accessToken: "test-token",
		limiter:     rate.NewLimiter(rate.Inf, 1),
	}, srv
}

func TestSearchSongs(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization = %q", auth)
		}
		fmt.Fprint(w, `{"response": {"hits": [
			{"type": "song", "result": {
				"id": 1234, "title": "C.R.E.A.M.",
				"url": "https://genius.example/wu-tang-clan-cream-lyrics",
				"primary_artist": {"name": "Wu-Tang Clan"}}}
		]}}`)
	}))

	songs, err := c.SearchSongs(context.Background(), "Wu-Tang Clan C.R.E.A.M.")
	if err != nil {
		t.Fatalf("SearchSongs: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	s := songs[0]
	if s.ID != 1234 || s.Title != "C.R.E.A.M." || s.PrimaryArtist != "Wu-Tang Clan" {
		t.Errorf("unexpected song: %+v", s)
	}
}

func TestSearchSongs_noHits(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response": {"hits": []}}`)
	}))

	songs, err := c.SearchSongs(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("SearchSongs: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("got %d songs, want 0", len(songs))
	}
}

func TestGetSong_notFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	}))

	_, err := c.GetSong(context.Background(), 99999)
	if !errs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestLyrics(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div data-lyrics-container="true">[Chorus]<br>Cash rules everything around me<br>CREAM, get the money</div>
			<div data-lyrics-container="true">Dollar dollar bill, y'all</div>
		</body></html>`)
	}))

	lyrics, err := c.Lyrics(context.Background(), srv.URL+"/wu-tang-clan-cream-lyrics")
	if err != nil {
		t.Fatalf("Lyrics: %v", err)
	}
	for _, want := range []string{
		"Cash rules everything around me",
		"CREAM, get the money",
		"Dollar dollar bill, y'all",
	} {
		if !strings.Contains(lyrics, want) {
			t.Errorf("lyrics missing %q:\n%s", want, lyrics)
		}
	}
	if !strings.Contains(lyrics, "Cash rules everything around me\nCREAM") {
		t.Errorf("line breaks not preserved:\n%s", lyrics)
	}
}

func TestLyrics_noContainer(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>not a lyrics page</div></body></html>`)
	}))

	_, err := c.Lyrics(context.Background(), srv.URL+"/not-lyrics")
	if err == nil {
		t.Fatal("Lyrics should fail when no container is present")
	}
}

package musixmatch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/bplemons/flow-metrics/internal/errs"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		http:    srv.Client(),
		baseURL: srv.URL,
		apiKey:  "test-key",
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func TestSearchTracks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("apikey = %q", q.Get("apikey"))
		}
		if q.Get("q_artist") != "Nas" || q.Get("q_track") != "N.Y. State of Mind" {
			t.Errorf("unexpected query: %v", q)
		}
		if q.Get("s_track_rating") != "desc" {
			t.Errorf("s_track_rating = %q", q.Get("s_track_rating"))
		}
		fmt.Fprint(w, `{"message": {"header": {"status_code": 200},
			"body": {"track_list": [
				{"track": {"track_id": 5920049, "track_name": "N.Y. State of Mind",
					"artist_name": "Nas", "album_name": "Illmatic",
					"track_rating": 85, "has_lyrics": 1, "explicit": 1}}
			]}}}`)
	}))

	tracks, err := c.SearchTracks(context.Background(), "Nas", "N.Y. State of Mind")
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	tr := tracks[0]
	if tr.ID != 5920049 || tr.Title != "N.Y. State of Mind" || tr.ArtistName != "Nas" {
		t.Errorf("unexpected track: %+v", tr)
	}
	if !tr.HasLyrics || !tr.Explicit || tr.Rating != 85 {
		t.Errorf("flags not decoded: %+v", tr)
	}
}

func TestSearchTracks_noMatches(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"header": {"status_code": 200},
			"body": {"track_list": []}}}`)
	}))

	tracks, err := c.SearchTracks(context.Background(), "Nobody", "Nothing")
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestSearchTracks_envelopeStatus(t *testing.T) {
	// Failures arrive as HTTP 200 with the real status in the envelope.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"header": {"status_code": 401, "hint": "authentication failed"},
			"body": {}}}`)
	}))

	_, err := c.SearchTracks(context.Background(), "Nas", "One Mic")
	if !errs.HasStatus(err, http.StatusUnauthorized) {
		t.Errorf("error = %v, want upstream status 401", err)
	}
}

func TestGetLyrics(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("track_id"); got != "5920049" {
			t.Errorf("track_id = %q", got)
		}
		fmt.Fprint(w, `{"message": {"header": {"status_code": 200},
			"body": {"lyrics": {"lyrics_id": 1010,
				"lyrics_body": "Rappers, I monkey flip 'em with the funky rhythm\n...\n******* This Lyrics is NOT for Commercial use *******",
				"lyrics_copyright": "Writer(s): Nasir Jones",
				"lyrics_language": "en"}}}}`)
	}))

	lyrics, err := c.GetLyrics(context.Background(), 5920049)
	if err != nil {
		t.Fatalf("GetLyrics: %v", err)
	}
	if lyrics.ID != 1010 || lyrics.Language != "en" {
		t.Errorf("unexpected lyrics: %+v", lyrics)
	}
	want := "Rappers, I monkey flip 'em with the funky rhythm\n..."
	if lyrics.Body != want {
		t.Errorf("Body = %q, want banner stripped: %q", lyrics.Body, want)
	}
}

func TestGetLyrics_notFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"header": {"status_code": 404}, "body": {}}}`)
	}))

	_, err := c.GetLyrics(context.Background(), 99999)
	if !errs.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestGetLyrics_retriesServerErrors(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "oops", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"message": {"header": {"status_code": 200},
			"body": {"lyrics": {"lyrics_id": 2020, "lyrics_body": "One mic"}}}}`)
	}))

	lyrics, err := c.GetLyrics(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetLyrics: %v", err)
	}
	if calls != 3 {
		t.Errorf("got %d calls, want 3", calls)
	}
	if lyrics.Body != "One mic" {
		t.Errorf("Body = %q", lyrics.Body)
	}
}

func TestStripTrackingBanner(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"banner", "line one\nline two\n...\n\n******* This Lyrics is NOT for Commercial use *******\n(1409623461)", "line one\nline two\n..."},
		{"noBanner", "line one\nline two", "line one\nline two"},
		{"bannerOnly", "******* This Lyrics is NOT for Commercial use *******", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripTrackingBanner(tc.in); got != tc.want {
				t.Errorf("stripTrackingBanner(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

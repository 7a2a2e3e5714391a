package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/config"
	"github.com/bplemons/flow-metrics/internal/genius"
	"github.com/bplemons/flow-metrics/internal/match"
	"github.com/bplemons/flow-metrics/internal/musicbrainz"
	"github.com/bplemons/flow-metrics/internal/musixmatch"
	"github.com/bplemons/flow-metrics/internal/spotify"
	"github.com/bplemons/flow-metrics/internal/store"
	"github.com/bplemons/flow-metrics/internal/vocab"
)

// matchThreshold is the minimum name similarity for accepting a cross-API
// match, from the original matching heuristics.
const matchThreshold = 0.85

type CollectConfig struct {
	DbPath    string
	MaxTracks int
	TopOnly   bool
	Force     bool
}

var collectMaxTracks int
var collectTopOnly bool
var collectForce bool
var collectCmd = &cobra.Command{
	Use:   "collect <artist name>",
	Short: "Collects an artist's metadata and vocabulary metrics",
	Long: `Resolves the artist on Spotify, matches against MusicBrainz for career
dates, walks the discography, fetches lyrics from Genius, and stores the
computed vocabulary metrics in the local database. When MUSIXMATCH_API_KEY
is set, Musixmatch serves as a fallback lyrics source for tracks Genius
cannot match. Lyrics themselves are never stored. Reruns skip tracks that
already have metrics.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc := CollectConfig{
			DbPath:    loadConfig().DatabasePath,
			MaxTracks: collectMaxTracks,
			TopOnly:   collectTopOnly,
			Force:     collectForce,
		}
		err := collectArtist(cc, strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVar(&collectMaxTracks, "max-tracks", 50, "maximum number of tracks to analyze")
	collectCmd.Flags().BoolVar(&collectTopOnly, "top-only", false, "only analyze the artist's top tracks")
	collectCmd.Flags().BoolVarP(&collectForce, "force", "f", false, "recompute metrics for tracks that already have them")
}

func collectArtist(cc CollectConfig, name string) error {
	cfg := loadConfig()
	if err := cfg.RequireSpotify(); err != nil {
		return err
	}
	if err := cfg.RequireGenius(); err != nil {
		return err
	}

	ctx := context.Background()
	client := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	artist, err := resolveArtist(ctx, client, name)
	if err != nil {
		return err
	}
	fmt.Printf("Collecting %s (%s)\n", artist.Name, artist.ID)

	db, err := store.New(cc.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	row := store.Artist{
		ID:         artist.ID,
		Name:       artist.Name,
		Popularity: artist.Popularity,
		Followers:  artist.Followers,
		ImageURL:   artist.ImageURL,
	}

	// The MusicBrainz match only adds career dates; a failed match is
	// reported but never aborts collection.
	if err := cfg.RequireMusicBrainz(); err == nil {
		mbArtist, ok, err := matchMusicBrainzArtist(ctx, cfg, artist.Name)
		if err != nil && !cfg.Quiet() {
			fmt.Printf("MusicBrainz match failed for %q: %v\n", artist.Name, err)
		} else if ok {
			row.MBID = mbArtist.ID
			row.BeginYear = mbArtist.ActiveYears.Begin
			row.EndYear = mbArtist.ActiveYears.End
			if !cfg.Quiet() {
				fmt.Printf("Matched MusicBrainz artist %s (%s)\n", mbArtist.Name, mbArtist.ID)
			}
		} else if err == nil && !cfg.Quiet() {
			fmt.Printf("No MusicBrainz match for %q\n", artist.Name)
		}
	} else if !cfg.Quiet() {
		fmt.Println("Skipping MusicBrainz match (no contact address configured)")
	}

	if err := db.SaveArtist(row); err != nil {
		return err
	}

	tracks, err := gatherTracks(ctx, client, artist, cc)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d tracks to analyze\n", len(tracks))

	rows := make([]store.Track, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, store.Track{
			ID:          t.ID,
			ArtistID:    artist.ID,
			Title:       t.Title,
			Album:       t.AlbumName,
			ReleaseDate: t.ReleaseDate,
			DurationMS:  t.DurationMS,
			Popularity:  t.Popularity,
		})
	}
	if err := db.SaveTracks(rows); err != nil {
		return err
	}

	lyricsClient := genius.New(cfg.GeniusAccessToken)

	// Musixmatch is only consulted when Genius comes up empty, and only when
	// an API key is configured.
	var fallback *musixmatch.Client
	if err := cfg.RequireMusixmatch(); err == nil {
		fallback = musixmatch.New(cfg.MusixmatchAPIKey)
	}

	analyzed := 0
	for i, t := range tracks {
		if !cc.Force {
			has, err := db.HasMetrics(t.ID)
			if err != nil {
				return err
			}
			if has {
				continue
			}
		}

		if !cfg.Quiet() {
			fmt.Printf("[%d/%d] %s\n", i+1, len(tracks), t.Title)
		}
		metrics, source, err := analyzeTrack(ctx, lyricsClient, fallback, artist.Name, t.Title)
		if err != nil {
			if !cfg.Quiet() {
				fmt.Printf("Skipping %q: %v\n", t.Title, err)
			}
			continue
		}

		if err := db.SaveMetrics(t.ID, metrics, source); err != nil {
			return err
		}
		analyzed++
	}

	fmt.Printf("Analyzed %d of %d tracks for %s\n", analyzed, len(tracks), artist.Name)
	return nil
}

func matchMusicBrainzArtist(ctx context.Context, cfg *config.Config, name string) (musicbrainz.Artist, bool, error) {
	mb := musicbrainz.New(cfg.MusicBrainzApp, cfg.MusicBrainzVersion, cfg.MusicBrainzContact)

	candidates, err := mb.SearchArtists(ctx, name, 5)
	if err != nil {
		return musicbrainz.Artist{}, false, err
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	idx, _ := match.BestMatch(name, names, matchThreshold)
	if idx < 0 {
		return musicbrainz.Artist{}, false, nil
	}
	return candidates[idx], true, nil
}

// gatherTracks walks the discography (or just the top tracks) and dedupes by
// normalized title, so remasters and compilation reissues are counted once.
func gatherTracks(ctx context.Context, client *spotify.Client, artist spotify.Artist, cc CollectConfig) ([]spotify.Track, error) {
	if cc.TopOnly {
		tracks, err := client.TopTracks(ctx, artist.ID, "US")
		if err != nil {
			return nil, err
		}
		if cc.MaxTracks > 0 && len(tracks) > cc.MaxTracks {
			tracks = tracks[:cc.MaxTracks]
		}
		return tracks, nil
	}

	seen := map[string]bool{}
	var tracks []spotify.Track
	for t, err := range client.Tracks(ctx, artist.ID, spotify.ReleaseAlbum, spotify.ReleaseSingle) {
		if err != nil {
			return nil, fmt.Errorf("walking discography: %w", err)
		}
		key := match.Normalize(t.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		tracks = append(tracks, t)
		if cc.MaxTracks > 0 && len(tracks) >= cc.MaxTracks {
			break
		}
	}
	return tracks, nil
}

// analyzeTrack fetches the track's lyrics, preferring Genius and falling
// back to Musixmatch when a fallback client is configured, then computes
// vocabulary metrics. It reports which source supplied the lyrics; the
// lyric text stays in memory only.
func analyzeTrack(ctx context.Context, client *genius.Client, fallback *musixmatch.Client, artistName, title string) (vocab.Metrics, string, error) {
	lyrics, geniusErr := geniusLyrics(ctx, client, artistName, title)
	source := "genius"
	if geniusErr != nil {
		if fallback == nil {
			return vocab.Metrics{}, "", geniusErr
		}
		var mmErr error
		lyrics, mmErr = musixmatchLyrics(ctx, fallback, artistName, title)
		if mmErr != nil {
			return vocab.Metrics{}, "", fmt.Errorf("genius: %v; musixmatch: %w", geniusErr, mmErr)
		}
		source = "musixmatch"
	}

	metrics, err := vocab.Analyze(lyrics, vocab.Options{})
	if err != nil {
		return vocab.Metrics{}, "", err
	}
	return metrics, source, nil
}

func geniusLyrics(ctx context.Context, client *genius.Client, artistName, title string) (string, error) {
	songs, err := client.SearchSongs(ctx, artistName+" "+title)
	if err != nil {
		return "", err
	}

	var song *genius.Song
	for i := range songs {
		if match.Similarity(songs[i].PrimaryArtist, artistName) < matchThreshold {
			continue
		}
		if match.Similarity(songs[i].Title, title) < matchThreshold {
			continue
		}
		song = &songs[i]
		break
	}
	if song == nil {
		return "", fmt.Errorf("no Genius match for %q", title)
	}

	return client.Lyrics(ctx, song.URL)
}

func musixmatchLyrics(ctx context.Context, client *musixmatch.Client, artistName, title string) (string, error) {
	tracks, err := client.SearchTracks(ctx, artistName, title)
	if err != nil {
		return "", err
	}

	for _, t := range tracks {
		if !t.HasLyrics {
			continue
		}
		if match.Similarity(t.ArtistName, artistName) < matchThreshold {
			continue
		}
		if match.Similarity(t.Title, title) < matchThreshold {
			continue
		}
		lyrics, err := client.GetLyrics(ctx, t.ID)
		if err != nil {
			return "", err
		}
		return lyrics.Body, nil
	}
	return "", fmt.Errorf("no Musixmatch match for %q", title)
}

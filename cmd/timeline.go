package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/musicbrainz"
	"github.com/bplemons/flow-metrics/internal/spotify"
)

var timelineType string
var timelineMusicBrainz bool
var timelineCmd = &cobra.Command{
	Use:   "timeline <artist name>",
	Short: "Shows an artist's releases grouped by year",
	Long: `Walks the artist's Spotify discography and counts releases per year.
With --musicbrainz, walks MusicBrainz release groups instead, which cover
releases that predate streaming catalogs.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTimeline(strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVar(&timelineType, "type", "album", "release type: album, single, compilation, or appears_on")
	timelineCmd.Flags().BoolVar(&timelineMusicBrainz, "musicbrainz", false, "use MusicBrainz release groups")
}

func printTimeline(name string) error {
	cfg := loadConfig()

	byYear := map[string]int{}
	var source string

	if timelineMusicBrainz {
		if err := cfg.RequireMusicBrainz(); err != nil {
			return err
		}
		// MusicBrainz only distinguishes album, single, and ep primary types.
		if timelineType == string(spotify.ReleaseAppearsOn) {
			return fmt.Errorf("release type %q is Spotify-specific", timelineType)
		}
		if err := musicBrainzTimeline(cfg.MusicBrainzApp, cfg.MusicBrainzVersion, cfg.MusicBrainzContact, name, byYear); err != nil {
			return err
		}
		source = "MusicBrainz"
	} else {
		if err := cfg.RequireSpotify(); err != nil {
			return err
		}
		releaseType, err := spotify.ParseReleaseType(timelineType)
		if err != nil {
			return err
		}
		if err := spotifyTimeline(cfg.SpotifyClientID, cfg.SpotifyClientSecret, name, releaseType, byYear); err != nil {
			return err
		}
		source = "Spotify"
	}

	years := make([]string, 0, len(byYear))
	total := 0
	for year, count := range byYear {
		years = append(years, year)
		total += count
	}
	sort.Strings(years)

	analysis := Analysis{results: [][]string{{"Year", "Releases"}}}
	for _, year := range years {
		analysis.results = append(analysis.results, []string{year, strconv.Itoa(byYear[year])})
	}
	if len(years) > 0 {
		analysis.summary = fmt.Sprintf("%d %s releases from %s to %s (%s)",
			total, timelineType, years[0], years[len(years)-1], source)
	} else {
		analysis.summary = fmt.Sprintf("No %s releases found (%s)", timelineType, source)
	}
	fmt.Println(analysis)

	return nil
}

func spotifyTimeline(clientID, clientSecret, name string, releaseType spotify.ReleaseType, byYear map[string]int) error {
	ctx := context.Background()
	client := spotify.New(clientID, clientSecret)

	artist, err := resolveArtist(ctx, client, name)
	if err != nil {
		return err
	}

	for album, err := range client.Albums(ctx, artist.ID, releaseType) {
		if err != nil {
			return fmt.Errorf("walking releases: %w", err)
		}
		byYear[releaseYear(album.ReleaseDate)]++
	}
	return nil
}

func musicBrainzTimeline(app, version, contact, name string, byYear map[string]int) error {
	ctx := context.Background()
	client := musicbrainz.New(app, version, contact)

	artists, err := client.SearchArtists(ctx, name, 1)
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		return fmt.Errorf("no MusicBrainz artist found for %q", name)
	}

	for rg, err := range client.ReleaseGroups(ctx, artists[0].ID, timelineType) {
		if err != nil {
			return fmt.Errorf("walking release groups: %w", err)
		}
		byYear[releaseYear(rg.FirstReleaseDate)]++
	}
	return nil
}

// releaseYear extracts the year from a yyyy, yyyy-mm, or yyyy-mm-dd date.
func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return "unknown"
}

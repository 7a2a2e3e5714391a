package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/spotify"
)

var statsMarket string
var statsCmd = &cobra.Command{
	Use:   "stats <artist name>",
	Short: "Shows an artist's profile and top tracks",
	Long:  `Resolves the name on Spotify and prints popularity, followers, release counts by type, and the artist's top tracks.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printStats(strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsMarket, "market", "US", "market for top tracks")
}

func printStats(name string) error {
	cfg := loadConfig()
	if err := cfg.RequireSpotify(); err != nil {
		return err
	}

	ctx := context.Background()
	client := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	artist, err := resolveArtist(ctx, client, name)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", artist.Name, artist.ID)
	fmt.Printf("Popularity: %d  Followers: %d\n", artist.Popularity, artist.Followers)
	if len(artist.Genres) > 0 {
		fmt.Printf("Genres: %s\n", strings.Join(artist.Genres, ", "))
	}
	fmt.Println()

	counts := map[spotify.ReleaseType]int{}
	for album, err := range client.Albums(ctx, artist.ID) {
		if err != nil {
			return fmt.Errorf("walking releases: %w", err)
		}
		counts[album.Type]++
	}

	releases := Analysis{results: [][]string{{"Type", "Releases"}}}
	total := 0
	for _, rt := range []spotify.ReleaseType{
		spotify.ReleaseAlbum, spotify.ReleaseSingle,
		spotify.ReleaseCompilation, spotify.ReleaseAppearsOn,
	} {
		if counts[rt] == 0 {
			continue
		}
		releases.results = append(releases.results, []string{string(rt), strconv.Itoa(counts[rt])})
		total += counts[rt]
	}
	releases.summary = fmt.Sprintf("%d releases in total", total)
	fmt.Println(releases)

	tracks, err := client.TopTracks(ctx, artist.ID, statsMarket)
	if err != nil {
		return err
	}

	top := Analysis{results: [][]string{{"Title", "Album", "Released", "Popularity"}}}
	for _, t := range tracks {
		top.results = append(top.results, []string{
			t.Title, t.AlbumName, t.ReleaseDate, strconv.Itoa(t.Popularity),
		})
	}
	top.summary = fmt.Sprintf("Top %d tracks in %s", len(tracks), statsMarket)
	fmt.Println(top)

	return nil
}

// resolveArtist picks the first Spotify search result, which the API orders
// by relevance.
func resolveArtist(ctx context.Context, client *spotify.Client, name string) (spotify.Artist, error) {
	artists, err := client.SearchArtists(ctx, name, 1)
	if err != nil {
		return spotify.Artist{}, err
	}
	if len(artists) == 0 {
		return spotify.Artist{}, fmt.Errorf("no Spotify artist found for %q", name)
	}
	return artists[0], nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/musicbrainz"
	"github.com/bplemons/flow-metrics/internal/spotify"
)

var searchNumber int
var searchMusicBrainz bool
var searchCmd = &cobra.Command{
	Use:   "search <artist name>",
	Short: "Searches for artists by name",
	Long:  `Lists Spotify candidates for the given name. With --musicbrainz, also lists MusicBrainz candidates with their active years.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printSearch(strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchNumber, "number", "n", 5, "number of candidates to show")
	searchCmd.Flags().BoolVar(&searchMusicBrainz, "musicbrainz", false, "also search MusicBrainz")
}

func printSearch(name string) error {
	cfg := loadConfig()
	if err := cfg.RequireSpotify(); err != nil {
		return err
	}

	ctx := context.Background()
	client := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	artists, err := client.SearchArtists(ctx, name, searchNumber)
	if err != nil {
		return err
	}

	analysis := Analysis{results: [][]string{{"ID", "Name", "Popularity", "Followers", "Genres"}}}
	for _, a := range artists {
		analysis.results = append(analysis.results, []string{
			a.ID,
			a.Name,
			strconv.Itoa(a.Popularity),
			strconv.FormatInt(a.Followers, 10),
			strings.Join(a.Genres, ", "),
		})
	}
	analysis.summary = fmt.Sprintf("Found %d Spotify candidates for %q", len(artists), name)
	fmt.Println(analysis)

	if !searchMusicBrainz {
		return nil
	}

	if err := cfg.RequireMusicBrainz(); err != nil {
		return err
	}
	mb := musicbrainz.New(cfg.MusicBrainzApp, cfg.MusicBrainzVersion, cfg.MusicBrainzContact)

	mbArtists, err := mb.SearchArtists(ctx, name, searchNumber)
	if err != nil {
		return err
	}

	mbAnalysis := Analysis{results: [][]string{{"MBID", "Name", "Type", "Country", "Active", "Score"}}}
	for _, a := range mbArtists {
		mbAnalysis.results = append(mbAnalysis.results, []string{
			a.ID,
			a.Name,
			a.Type,
			a.Country,
			formatActiveYears(a.ActiveYears),
			strconv.Itoa(a.Score),
		})
	}
	mbAnalysis.summary = fmt.Sprintf("Found %d MusicBrainz candidates for %q", len(mbArtists), name)
	fmt.Println(mbAnalysis)

	return nil
}

func formatActiveYears(ys musicbrainz.ActiveYears) string {
	if ys.Begin == "" && ys.End == "" {
		return ""
	}
	end := ys.End
	if end == "" && !ys.Ended {
		end = "present"
	}
	return fmt.Sprintf("%s to %s", ys.Begin, end)
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/analysis"
	"github.com/bplemons/flow-metrics/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes vocabulary metrics across collected artists",
	Long: `Aggregates the stored per-track metrics by artist and, when enough
artists were collected, correlates lexical diversity with popularity.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printReport(loadConfig().DatabasePath)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func printReport(dbPath string) error {
	report, err := generateReport(dbPath)
	if err != nil {
		return err
	}

	fmt.Println(formatReport(report))
	fmt.Print(formatCorrelations(report))
	return nil
}

func generateReport(dbPath string) (*analysis.Report, error) {
	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return analysis.GenerateReport(db.DB())
}

func formatReport(report *analysis.Report) Analysis {
	a := Analysis{results: [][]string{
		{"Artist", "Popularity", "Followers", "Tracks", "Mean TTR", "Mean unique", "Mean word len", "Mean density"},
	}}
	for _, artist := range report.Artists {
		a.results = append(a.results, []string{
			artist.Name,
			strconv.Itoa(artist.Popularity),
			strconv.FormatInt(artist.Followers, 10),
			strconv.Itoa(artist.Tracks),
			strconv.FormatFloat(artist.MeanTypeTokenRatio, 'f', 3, 64),
			strconv.FormatFloat(artist.MeanUniqueWords, 'f', 1, 64),
			strconv.FormatFloat(artist.MeanWordLength, 'f', 2, 64),
			strconv.FormatFloat(artist.MeanLexicalDensity, 'f', 3, 64),
		})
	}
	a.summary = fmt.Sprintf("%d artists with analyzed tracks (generated %s)",
		len(report.Artists), report.GeneratedDate)
	return a
}

func formatCorrelations(report *analysis.Report) string {
	out := ""
	if c := report.PopularityDiversity; c != nil {
		out += fmt.Sprintf("Popularity vs. lexical diversity: Pearson %.3f, Spearman %.3f (n=%d)\n",
			c.Pearson, c.Spearman, c.N)
	}
	if c := report.FollowersDiversity; c != nil {
		out += fmt.Sprintf("Followers vs. lexical diversity: Pearson %.3f, Spearman %.3f (n=%d)\n",
			c.Pearson, c.Spearman, c.N)
	}
	if out == "" {
		out = "Not enough artists to correlate diversity with popularity.\n"
	}
	return out
}

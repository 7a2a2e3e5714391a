package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bplemons/flow-metrics/internal/errs"
	"github.com/bplemons/flow-metrics/internal/vocab"
)

var analyzeFile string
var analyzeExcludeStopwords bool
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Computes vocabulary metrics for lyrics text",
	Long: `Reads lyrics from the arguments, from --file, or from stdin when the file
is '-', and prints the vocabulary metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnalysis(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read lyrics from this file ('-' for stdin)")
	analyzeCmd.Flags().BoolVar(&analyzeExcludeStopwords, "exclude-stopwords", false, "drop common English stopwords before computing metrics")
}

func printAnalysis(args []string) error {
	lyrics, err := readLyrics(args)
	if err != nil {
		return err
	}

	metrics, err := vocab.Analyze(lyrics, vocab.Options{ExcludeStopwords: analyzeExcludeStopwords})
	if errors.Is(err, errs.ErrDivisionUndefined) {
		return fmt.Errorf("no words left to analyze after cleaning")
	}
	if err != nil {
		return err
	}

	fmt.Println(formatMetrics(metrics))
	return nil
}

func readLyrics(args []string) (string, error) {
	switch {
	case analyzeFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("reading lyrics file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", fmt.Errorf("no lyrics given: pass text arguments or --file")
}

func formatMetrics(m vocab.Metrics) Analysis {
	return Analysis{
		results: [][]string{
			{"Total words", "Unique words", "Type-token ratio", "Avg word length", "Lexical density"},
			{
				strconv.Itoa(m.TotalWords),
				strconv.Itoa(m.UniqueWords),
				strconv.FormatFloat(m.TypeTokenRatio, 'f', 3, 64),
				strconv.FormatFloat(m.AverageWordLength, 'f', 2, 64),
				strconv.FormatFloat(m.LexicalDensity, 'f', 3, 64),
			},
		},
		summary: fmt.Sprintf("%d words, %d unique", m.TotalWords, m.UniqueWords),
	}
}

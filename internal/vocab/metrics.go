package vocab

import (
	"fmt"
	"unicode/utf8"

	"github.com/bplemons/flow-metrics/internal/errs"
)

// Metrics is an immutable snapshot of the lexical-diversity measures derived
// from one lyrics text.
type Metrics struct {
	TotalWords        int
	UniqueWords       int
	TypeTokenRatio    float64
	AverageWordLength float64
	LexicalDensity    float64
}

// Compute reduces a token sequence to its vocabulary metrics. An empty
// sequence fails with errs.ErrDivisionUndefined rather than returning zeros,
// so degenerate lyrics never corrupt downstream correlation data.
func Compute(tokens []string) (Metrics, error) {
	total := len(tokens)
	if total == 0 {
		return Metrics{}, fmt.Errorf("computing vocabulary metrics: %w", errs.ErrDivisionUndefined)
	}

	seen := make(map[string]bool, total)
	runeCount := 0
	contentWords := 0
	for _, token := range tokens {
		seen[token] = true
		runeCount += utf8.RuneCountInString(token)
		if IsContentWord(token) {
			contentWords++
		}
	}

	return Metrics{
		TotalWords:        total,
		UniqueWords:       len(seen),
		TypeTokenRatio:    float64(len(seen)) / float64(total),
		AverageWordLength: float64(runeCount) / float64(total),
		LexicalDensity:    float64(contentWords) / float64(total),
	}, nil
}

// Analyze cleans and tokenizes raw lyric text, then computes its metrics.
func Analyze(lyrics string, opts Options) (Metrics, error) {
	return Compute(Tokenize(Clean(lyrics), opts))
}

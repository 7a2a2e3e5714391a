package vocab

import (
	"strings"
	"unicode"
)

// Options configures tokenization.
type Options struct {
	// ExcludeStopwords removes stopwords before metric computation.
	ExcludeStopwords bool

	// Stopwords overrides the default English stopword set. Ignored
	// unless ExcludeStopwords is true.
	Stopwords map[string]bool
}

// Tokenize splits cleaned text into an ordered sequence of lowercase word
// tokens. Tokens that are not purely alphabetic are dropped, matching the
// word filter the metrics are defined over. Order is preserved as
// encountered.
func Tokenize(text string, opts Options) []string {
	stop := opts.Stopwords
	if opts.ExcludeStopwords && stop == nil {
		stop = EnglishStopwords
	}

	tokens := []string{}
	for _, field := range strings.Fields(text) {
		word := strings.ToLower(field)
		if !alphabetic(word) {
			continue
		}
		if opts.ExcludeStopwords && stop[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func alphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

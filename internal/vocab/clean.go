// Package vocab cleans and tokenizes lyric text and reduces it to a fixed
// set of lexical-diversity metrics. Everything here is a pure function of
// its input, so concurrent callers need no locking.
package vocab

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	timestampRe   = regexp.MustCompile(`\[\d+:\d+\]`)
	sectionRe     = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Clean strips structural annotations from raw lyric text and normalizes it
// for tokenization: section labels like [Chorus] and timestamps like [0:42]
// are removed, parenthetical annotations like (x2) are removed, the text is
// lowercased, punctuation is deleted, and whitespace is collapsed. Clean
// never fails; empty input yields an empty string.
func Clean(lyrics string) string {
	text := strings.ToLower(lyrics)

	text = timestampRe.ReplaceAllString(text, "")
	text = sectionRe.ReplaceAllString(text, "")
	text = parentheticRe.ReplaceAllString(text, "")

	// Delete punctuation and symbols in place so contractions collapse
	// ("don't" becomes "dont") instead of splitting into two tokens.
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

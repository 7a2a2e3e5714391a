// Package match scores name similarity between entities from different
// music APIs, so a Spotify artist can be paired with its MusicBrainz
// counterpart without exact string equality.
package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases a name, deletes punctuation, and collapses
// whitespace, producing a form suitable for comparison.
func Normalize(name string) string {
	lower := strings.ToLower(name)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lower)
	return strings.Join(strings.Fields(stripped), " ")
}

// Similarity returns a score in [0, 1] for two names, computed as the
// normalized longest-common-subsequence ratio of their normalized forms.
// Identical names score 1.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}

	ra, rb := []rune(na), []rune(nb)
	common := lcs(ra, rb)
	return 2 * float64(common) / float64(len(ra)+len(rb))
}

// BestMatch returns the index of the candidate most similar to target, or -1
// if no candidate meets the threshold.
func BestMatch(target string, candidates []string, threshold float64) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		if score := Similarity(target, c); score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore < threshold {
		return -1, bestScore
	}
	return best, bestScore
}

func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

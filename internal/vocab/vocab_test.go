package vocab

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bplemons/flow-metrics/internal/errs"
)

func TestClean_stripsAnnotations(t *testing.T) {
	in := "[Verse 1]\nCash rules everything around me (C.R.E.A.M.)\n[0:42] C.R.E.A.M., get the money!"
	got := Clean(in)
	want := "cash rules everything around me cream get the money"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty string", got)
	}
	if got := Clean("[Chorus] (x2) ..."); got != "" {
		t.Errorf("Clean(annotations only) = %q, want empty string", got)
	}
}

func TestTokenize_preservesOrder(t *testing.T) {
	tokens := Tokenize("cash rules everything around me cream get the money", Options{})
	want := []string{"cash", "rules", "everything", "around", "me", "cream", "get", "the", "money"}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize returned %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestTokenize_dropsNonAlphabetic(t *testing.T) {
	tokens := Tokenize("straight outta 88 compton", Options{})
	want := []string{"straight", "outta", "compton"}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize returned %v, want %v", tokens, want)
	}
}

func TestTokenize_customStopwords(t *testing.T) {
	stop := map[string]bool{"the": true, "and": true, "a": true}
	tokens := Tokenize("the cat and a dog", Options{ExcludeStopwords: true, Stopwords: stop})

	if len(tokens) != 2 || tokens[0] != "cat" || tokens[1] != "dog" {
		t.Fatalf("Tokenize with stopwords = %v, want [cat dog]", tokens)
	}

	m, err := Compute(tokens)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.UniqueWords != 2 || m.TotalWords != 2 {
		t.Errorf("got unique=%d total=%d, want 2/2", m.UniqueWords, m.TotalWords)
	}
}

func TestTokenize_defaultStopwords(t *testing.T) {
	tokens := Tokenize("the cat and a dog", Options{ExcludeStopwords: true})
	if len(tokens) != 2 || tokens[0] != "cat" || tokens[1] != "dog" {
		t.Fatalf("Tokenize with default stopwords = %v, want [cat dog]", tokens)
	}
}

func TestAnalyze_allUnique(t *testing.T) {
	m, err := Analyze("Cash rules everything around me, CREAM get the money", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if m.TotalWords != 9 {
		t.Errorf("TotalWords = %d, want 9", m.TotalWords)
	}
	if m.UniqueWords != 9 {
		t.Errorf("UniqueWords = %d, want 9", m.UniqueWords)
	}
	if m.TypeTokenRatio != 1.0 {
		t.Errorf("TypeTokenRatio = %v, want 1.0", m.TypeTokenRatio)
	}
	// cash rules everything around me cream get the money = 43 runes / 9 tokens
	if want := 43.0 / 9.0; math.Abs(m.AverageWordLength-want) > 1e-9 {
		t.Errorf("AverageWordLength = %v, want %v", m.AverageWordLength, want)
	}
}

func TestAnalyze_repeatedTokens(t *testing.T) {
	m, err := Analyze("money money money", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if m.TotalWords != 3 || m.UniqueWords != 1 {
		t.Errorf("got unique=%d total=%d, want 1/3", m.UniqueWords, m.TotalWords)
	}
	if want := 1.0 / 3.0; math.Abs(m.TypeTokenRatio-want) > 1e-9 {
		t.Errorf("TypeTokenRatio = %v, want %v", m.TypeTokenRatio, want)
	}
}

func TestAnalyze_emptyLyrics(t *testing.T) {
	_, err := Analyze("", Options{})
	if err == nil {
		t.Fatal("Analyze(\"\") should fail")
	}
	if !errors.Is(err, errs.ErrDivisionUndefined) {
		t.Errorf("Analyze(\"\") error = %v, want ErrDivisionUndefined", err)
	}

	// Annotation-only input degenerates the same way.
	_, err = Analyze("[Intro] (scratching)", Options{})
	if !errors.Is(err, errs.ErrDivisionUndefined) {
		t.Errorf("Analyze(annotations) error = %v, want ErrDivisionUndefined", err)
	}
}

func TestAnalyze_deterministic(t *testing.T) {
	lyrics := "I got the strength to carry on, I got the will to be reborn"
	first, err := Analyze(lyrics, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := Analyze(lyrics, Options{})
	if err != nil {
		t.Fatalf("Analyze (repeat): %v", err)
	}
	if first != second {
		t.Errorf("Analyze is not deterministic: %+v vs %+v", first, second)
	}
}

func TestCompute_invariants(t *testing.T) {
	inputs := []string{
		"one",
		"one two three",
		"la la la la la",
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("word ", 100),
	}
	for _, in := range inputs {
		tokens := Tokenize(in, Options{})
		m, err := Compute(tokens)
		if err != nil {
			t.Fatalf("Compute(%q): %v", in, err)
		}
		if m.UniqueWords > m.TotalWords {
			t.Errorf("%q: UniqueWords %d > TotalWords %d", in, m.UniqueWords, m.TotalWords)
		}
		if m.TypeTokenRatio <= 0 || m.TypeTokenRatio > 1 {
			t.Errorf("%q: TypeTokenRatio %v outside (0, 1]", in, m.TypeTokenRatio)
		}
		allUnique := m.UniqueWords == m.TotalWords
		if (m.TypeTokenRatio == 1.0) != allUnique {
			t.Errorf("%q: TTR = 1 should hold iff every token is unique", in)
		}
	}
}

func TestCompute_lexicalDensity(t *testing.T) {
	// "the" and "on" are function words; cat/sat/mat are content words.
	tokens := Tokenize("the cat sat on the mat", Options{})
	m, err := Compute(tokens)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if want := 3.0 / 6.0; math.Abs(m.LexicalDensity-want) > 1e-9 {
		t.Errorf("LexicalDensity = %v, want %v", m.LexicalDensity, want)
	}
}

func TestCompute_emptySequence(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, errs.ErrDivisionUndefined) {
		t.Errorf("Compute(nil) error = %v, want ErrDivisionUndefined", err)
	}
}

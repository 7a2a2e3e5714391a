// Package analysis aggregates stored vocabulary metrics per artist and
// relates lexical diversity to popularity.
package analysis

import (
	"database/sql"
	"fmt"
	"time"
)

// GenerateReport aggregates every artist's per-track metrics and, when the
// dataset allows, correlates mean type-token ratio against popularity and
// follower count. Artists without any analyzed tracks are excluded.
func GenerateReport(db *sql.DB) (*Report, error) {
	artists, err := artistVocabularies(db)
	if err != nil {
		return nil, fmt.Errorf("aggregating artist vocabularies: %w", err)
	}

	report := &Report{
		GeneratedDate: time.Now().Format("2006-01-02"),
		Artists:       artists,
	}

	var popularity, followers, diversity []float64
	for _, a := range artists {
		popularity = append(popularity, float64(a.Popularity))
		followers = append(followers, float64(a.Followers))
		diversity = append(diversity, a.MeanTypeTokenRatio)
	}

	// Correlations are best-effort: a tiny or constant dataset simply
	// produces a report without them.
	if c, err := correlate(popularity, diversity); err == nil {
		report.PopularityDiversity = c
	}
	if c, err := correlate(followers, diversity); err == nil {
		report.FollowersDiversity = c
	}

	return report, nil
}

func artistVocabularies(db *sql.DB) ([]ArtistVocabulary, error) {
	query := `
		SELECT a.name, a.popularity, a.followers,
		       COUNT(m.track),
		       AVG(m.type_token_ratio),
		       AVG(m.unique_words),
		       AVG(m.average_word_length),
		       AVG(m.lexical_density)
		FROM Artist a
		JOIN Track t ON t.artist = a.id
		JOIN TrackMetrics m ON m.track = t.id
		GROUP BY a.id
		ORDER BY AVG(m.type_token_ratio) DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []ArtistVocabulary
	for rows.Next() {
		var a ArtistVocabulary
		if err := rows.Scan(&a.Name, &a.Popularity, &a.Followers, &a.Tracks,
			&a.MeanTypeTokenRatio, &a.MeanUniqueWords, &a.MeanWordLength,
			&a.MeanLexicalDensity); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func correlate(x, y []float64) (*Correlation, error) {
	pearson, err := Pearson(x, y)
	if err != nil {
		return nil, err
	}
	spearman, err := Spearman(x, y)
	if err != nil {
		return nil, err
	}
	return &Correlation{Pearson: pearson, Spearman: spearman, N: len(x)}, nil
}

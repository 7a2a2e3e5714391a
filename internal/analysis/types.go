package analysis

// ArtistVocabulary aggregates the stored per-track metrics for one artist.
type ArtistVocabulary struct {
	Name               string
	Popularity         int
	Followers          int64
	Tracks             int
	MeanTypeTokenRatio float64
	MeanUniqueWords    float64
	MeanWordLength     float64
	MeanLexicalDensity float64
}

// Correlation pairs the two coefficients computed for one variable pair.
type Correlation struct {
	Pearson  float64
	Spearman float64
	N        int
}

// Report is the full analysis over the collected dataset. Correlation
// fields are nil when the dataset is too small or degenerate to compute
// them.
type Report struct {
	GeneratedDate string
	Artists       []ArtistVocabulary

	PopularityDiversity *Correlation
	FollowersDiversity  *Correlation
}

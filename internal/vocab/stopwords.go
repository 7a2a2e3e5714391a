package vocab

// EnglishStopwords is the default stopword set used when Options.Stopwords
// is nil. It covers the high-frequency English function words conventionally
// excluded from vocabulary-richness analysis.
var EnglishStopwords = wordSet(
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "isn't", "it", "its", "itself", "just",
	"me", "more", "most", "my", "myself", "no", "nor", "not", "now", "of",
	"off", "on", "once", "only", "or", "other", "our", "ours", "ourselves",
	"out", "over", "own", "same", "she", "should", "shouldn't", "so", "some",
	"such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "wasn't", "we", "were",
	"weren't", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "won't", "would", "wouldn't", "you", "your",
	"yours", "yourself", "yourselves",
)

// functionWords is the closed set used for lexical density: articles,
// prepositions, conjunctions, and personal pronouns. A token outside this
// set counts as a content word.
var functionWords = wordSet(
	// articles
	"a", "an", "the",
	// conjunctions
	"and", "but", "or", "nor", "for", "yet", "so", "because", "although",
	"though", "while", "if", "unless", "until", "since", "when", "whenever",
	"whereas",
	// prepositions
	"about", "above", "across", "after", "against", "along", "among",
	"around", "at", "before", "behind", "below", "beneath", "beside",
	"between", "beyond", "by", "down", "during", "except", "from", "in",
	"inside", "into", "near", "of", "off", "on", "onto", "out", "outside",
	"over", "past", "through", "to", "toward", "towards", "under", "up",
	"upon", "with", "within", "without",
	// pronouns
	"i", "me", "my", "mine", "myself", "we", "us", "our", "ours",
	"ourselves", "you", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "her", "hers", "herself", "it", "its",
	"itself", "they", "them", "their", "theirs", "themselves", "who",
	"whom", "whose", "which", "what", "that", "this", "these", "those",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsContentWord reports whether the normalized token counts toward lexical
// density.
func IsContentWord(token string) bool {
	return !functionWords[token]
}

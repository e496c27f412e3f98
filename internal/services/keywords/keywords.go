// Package keywords ranks the most important words of a text with TextRank.
package keywords

import (
	"sort"
	"strings"

	"github.com/DavidBelicza/TextRank/v2"
	"github.com/DavidBelicza/TextRank/v2/rank"
	"github.com/samber/lo"
)

// DefaultLimit is how many keywords the API returns.
const DefaultLimit = 10

// Keyword is one ranked term.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Extractor ranks single words by their TextRank weight.
type Extractor struct{}

// NewExtractor creates a keyword extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns up to limit keywords ordered by descending score.
// Fewer are returned when the text doesn't have that many candidates.
func (e *Extractor) Extract(text string, limit int) []Keyword {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return []Keyword{}
	}

	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	words := lo.Map(textrank.FindSingleWords(tr), func(w rank.SingleWord, _ int) Keyword {
		return Keyword{Term: w.Word, Score: float64(w.Weight)}
	})
	words = lo.UniqBy(words, func(k Keyword) string { return k.Term })

	// Go Pattern: SliceStable keeps ties in the library's order, so the
	// result is deterministic for a given input.
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Score > words[j].Score
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

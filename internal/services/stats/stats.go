// Package stats computes word count statistics.
package stats

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// SentenceCounter reports how many sentences a text has.
type SentenceCounter interface {
	CountSentences(text string) (int, error)
}

// Stats summarises the words of a text.
//
// Words are whitespace-separated tokens, punctuation included ("sat." is a
// word). UniqueWords is case-sensitive: "The" and "the" are different words.
type Stats struct {
	TotalWords        int     `json:"total_words"`
	UniqueWords       int     `json:"unique_words"`
	Sentences         int     `json:"sentences"`
	AverageWordLength float64 `json:"average_word_length"`
}

// Calculator computes Stats using a shared sentence segmenter.
type Calculator struct {
	sentences SentenceCounter
}

// NewCalculator creates a stats calculator.
func NewCalculator(sentences SentenceCounter) *Calculator {
	return &Calculator{sentences: sentences}
}

// Compute returns the statistics for text.
func (c *Calculator) Compute(text string) (*Stats, error) {
	words := strings.Fields(text)

	sentences, err := c.sentences.CountSentences(text)
	if err != nil {
		return nil, fmt.Errorf("failed to count sentences: %w", err)
	}

	return &Stats{
		TotalWords:        len(words),
		UniqueWords:       len(lo.Uniq(words)),
		Sentences:         sentences,
		AverageWordLength: averageLength(words),
	}, nil
}

// averageLength is the mean length in characters, 0 for no words.
func averageLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := lo.SumBy(words, utf8.RuneCountInString)
	return float64(total) / float64(len(words))
}

// Round2 rounds v to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package summary produces extractive summaries with TextRank.
//
// TextRank builds a graph of sentences connected by shared words and ranks
// them like PageRank ranks web pages. The best-connected sentences are the
// summary. No network, no model files: everything runs in-process.
package summary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/DavidBelicza/TextRank/v2"
)

// DefaultRatio is the share of sentences kept when the caller doesn't choose.
const DefaultRatio = 0.3

// ErrInvalidRatio means the ratio is outside (0, 1].
var ErrInvalidRatio = errors.New("summary ratio must be in (0, 1]")

// SentenceCounter reports how many sentences a text has.
// Go Pattern: A one-method interface keeps this package independent of the
// NLP pipeline, and tests can pass a stub.
type SentenceCounter interface {
	CountSentences(text string) (int, error)
}

// Service handles summary generation.
type Service struct {
	sentences SentenceCounter
}

// New creates a new summary service.
func New(sentences SentenceCounter) *Service {
	return &Service{sentences: sentences}
}

// Summarize keeps floor(ratio * sentenceCount) of the highest-ranked sentences
// and returns them in their original order, one per line.
// An empty string means the text is too short to summarize at this ratio.
func (s *Service) Summarize(text string, ratio float64) (string, error) {
	if ratio <= 0 || ratio > 1 || math.IsNaN(ratio) {
		return "", ErrInvalidRatio
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	total, err := s.sentences.CountSentences(text)
	if err != nil {
		return "", fmt.Errorf("failed to count sentences: %w", err)
	}

	keep := int(math.Floor(ratio * float64(total)))
	if keep == 0 {
		return "", nil
	}

	// Go Pattern: A fresh TextRank per call: the object accumulates
	// state across Populate calls, and we want each request independent.
	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	ranked := textrank.FindSentencesByRelationWeight(tr, keep)
	if len(ranked) == 0 {
		return "", nil
	}

	// Restore reading order: IDs follow the sentence position in the text.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].ID < ranked[j].ID
	})

	lines := make([]string, 0, len(ranked))
	for _, sentence := range ranked {
		if line := strings.TrimSpace(sentence.Value); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Package nlp wraps the prose NLP pipeline: sentence segmentation and
// named-entity recognition.
//
// Go Pattern: Instead of a package-level singleton that loads on first use,
// main() builds one *Pipeline at startup and hands it to every component
// that needs it. Tests can build their own.
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/samber/lo"
)

// Entity is a span of text tagged with a category (PERSON, GPE, ...).
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Pipeline holds the document options for the two kinds of analysis we run.
// It is safe for concurrent use; every call builds its own prose.Document.
type Pipeline struct {
	segmentOpts []prose.DocOpt
	entityOpts  []prose.DocOpt
}

// NewPipeline prepares the pipeline and runs a warm-up document so model
// loading errors surface at startup rather than on the first request.
func NewPipeline() (*Pipeline, error) {
	p := &Pipeline{
		// Segmentation only: no tokens, tags or entities needed.
		segmentOpts: []prose.DocOpt{
			prose.WithTokenization(false),
			prose.WithTagging(false),
			prose.WithExtraction(false),
		},
		// NER needs tokens and tags but not sentence boundaries.
		entityOpts: []prose.DocOpt{
			prose.WithSegmentation(false),
		},
	}

	if _, err := p.Entities("Warm up the tagger in New York."); err != nil {
		return nil, fmt.Errorf("failed to initialise NLP pipeline: %w", err)
	}
	return p, nil
}

// Sentences splits text into sentences using prose's punkt-based segmenter.
// Blank input yields no sentences.
func (p *Pipeline) Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, p.segmentOpts...)
	if err != nil {
		return nil, fmt.Errorf("sentence segmentation failed: %w", err)
	}

	sentences := lo.Map(doc.Sentences(), func(s prose.Sentence, _ int) string {
		return strings.TrimSpace(s.Text)
	})
	return lo.Compact(sentences), nil
}

// CountSentences returns the number of sentences in text.
func (p *Pipeline) CountSentences(text string) (int, error) {
	sentences, err := p.Sentences(text)
	if err != nil {
		return 0, err
	}
	return len(sentences), nil
}

// Entities returns the named entities found in text, in document order.
// An empty slice is a valid result.
func (p *Pipeline) Entities(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []Entity{}, nil
	}

	doc, err := prose.NewDocument(text, p.entityOpts...)
	if err != nil {
		return nil, fmt.Errorf("entity recognition failed: %w", err)
	}

	return lo.Map(doc.Entities(), func(e prose.Entity, _ int) Entity {
		return Entity{Text: e.Text, Label: e.Label}
	}), nil
}

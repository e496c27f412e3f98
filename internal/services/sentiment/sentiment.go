// Package sentiment scores the emotional tone of a text with VADER.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
)

// Label names the tone bucket a polarity falls into.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// threshold is the polarity magnitude a text must exceed to leave Neutral.
const threshold = 0.1

// Result is the outcome of a sentiment analysis.
// Polarity is in [-1, 1]; Subjectivity is in [0, 1].
type Result struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        Label   `json:"label"`
}

// Analyzer wraps the VADER intensity analyzer.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates a sentiment analyzer. The lexicon is compiled into
// govader, so there is nothing to load from disk.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Analyze scores text. Polarity is VADER's compound score and subjectivity is
// the share of the text carrying any sentiment at all.
func (a *Analyzer) Analyze(text string) Result {
	scores := a.vader.PolarityScores(text)

	polarity := clamp(scores.Compound, -1, 1)
	subjectivity := clamp(scores.Positive+scores.Negative, 0, 1)

	return Result{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        LabelFor(polarity),
	}
}

// LabelFor buckets a polarity: above 0.1 is Positive, below -0.1 is Negative,
// and anything in between (boundaries included) is Neutral.
func LabelFor(polarity float64) Label {
	switch {
	case polarity > threshold:
		return Positive
	case polarity < -threshold:
		return Negative
	default:
		return Neutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}

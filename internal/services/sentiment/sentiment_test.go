package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		polarity float64
		want     Label
	}{
		{0.8, Positive},
		{0.11, Positive},
		{0.1, Neutral},
		{0, Neutral},
		{-0.1, Neutral},
		{-0.11, Negative},
		{-1, Negative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelFor(tt.polarity), "polarity %v", tt.polarity)
	}
}

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name string
		text string
		want Label
	}{
		{"positive", "I love this wonderful, amazing product. It is great!", Positive},
		{"negative", "This is a terrible, awful and horrible experience.", Negative},
		{"neutral", "The meeting is on Tuesday at the office.", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.Equal(t, tt.want, got.Label)
			assert.GreaterOrEqual(t, got.Polarity, -1.0)
			assert.LessOrEqual(t, got.Polarity, 1.0)
			assert.GreaterOrEqual(t, got.Subjectivity, 0.0)
			assert.LessOrEqual(t, got.Subjectivity, 1.0)
		})
	}
}

func TestAnalyze_Empty(t *testing.T) {
	got := NewAnalyzer().Analyze("")
	assert.Equal(t, Neutral, got.Label)
	assert.Zero(t, got.Polarity)
}

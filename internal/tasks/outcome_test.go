package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/language"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/sentiment"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/similarity"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/stats"
)

func TestOutcome_Lines(t *testing.T) {
	tests := []struct {
		name string
		out  Outcome
		want []string
	}{
		{
			name: "keywords rounded to 3 places",
			out:  Outcome{Keywords: []keywords.Keyword{{Term: "gopher", Score: 0.91234}, {Term: "burrow", Score: 0.5}}},
			want: []string{"- gopher (Score: 0.912)", "- burrow (Score: 0.5)"},
		},
		{
			name: "sentiment",
			out:  Outcome{Sentiment: &sentiment.Result{Polarity: 0.5, Subjectivity: 0.25, Label: sentiment.Positive}},
			want: []string{"Sentiment: Positive", "Polarity: 0.500", "Subjectivity: 0.250"},
		},
		{
			name: "language",
			out:  Outcome{Language: &language.Detection{Code: "EN", Confidence: 0.98765}},
			want: []string{"Language: EN", "Confidence: 0.988"},
		},
		{
			name: "similarity percentage",
			out:  Outcome{Similarity: &similarity.Result{Ratio: 2.0 / 3.0, Percentage: 66.67}},
			want: []string{"Similarity: 66.67%"},
		},
		{
			name: "statistics",
			out:  Outcome{Stats: &stats.Stats{TotalWords: 6, UniqueWords: 5, Sentences: 2, AverageWordLength: 20.0 / 6.0}},
			want: []string{"Total Words: 6", "Unique Words: 5", "Total Sentences: 2", "Average Word Length: 3.33"},
		},
		{
			name: "notice only",
			out:  Outcome{Notice: &Notice{Level: LevelWarning, Message: MsgRenderError}},
			want: []string{MsgRenderError},
		},
		{
			name: "multi-line text",
			out:  Outcome{Text: "One.\nTwo."},
			want: []string{"One.", "Two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.out.Lines())
		})
	}
}

func TestRenderFor(t *testing.T) {
	assert.Equal(t, RenderText, RenderFor(LabelSummarization))
	assert.Equal(t, RenderText, RenderFor(LabelEncryption))
	assert.Equal(t, RenderList, RenderFor(LabelEntities))
	assert.Equal(t, RenderImage, RenderFor(LabelWordCloud))
	assert.Equal(t, RenderAudio, RenderFor(LabelTextToSpeech))
	assert.Equal(t, RenderStats, RenderFor(LabelWordStats))
}

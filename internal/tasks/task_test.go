package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParse_EveryLabel(t *testing.T) {
	require.Len(t, Labels, 12)

	for _, l := range Labels {
		task, err := Parse(string(l), Params{})
		require.NoError(t, err, l)
		assert.Equal(t, l, task.Label())
	}
}

func TestParse_Defaults(t *testing.T) {
	task, err := Parse("Summarization", Params{})
	require.NoError(t, err)
	assert.Equal(t, Summarization{Ratio: 0.3}, task)

	task, err = Parse("Encryption", Params{})
	require.NoError(t, err)
	assert.Equal(t, Encryption{Shift: 3}, task)
}

func TestParse_Params(t *testing.T) {
	tests := []struct {
		label  string
		params Params
		want   Task
	}{
		{"Summarization", Params{Ratio: ptr(1.0)}, Summarization{Ratio: 1}},
		{"Summarization", Params{Ratio: ptr(0.1)}, Summarization{Ratio: 0.1}},
		{"Encryption", Params{Shift: ptr(25)}, Encryption{Shift: 25}},
		{"Text Similarity Check", Params{Text2: "other"}, SimilarityCheck{Other: "other"}},
		{"Topic Description", Params{Query: "Go"}, TopicDescription{Query: "Go"}},
		// Parameters for other tasks are ignored.
		{"Word Cloud", Params{Shift: ptr(99)}, WordCloud{}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.label, tt.params)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		params Params
		want   error
	}{
		{"unknown label", "Translation", Params{}, ErrUnknownTask},
		{"label is case-sensitive", "summarization", Params{}, ErrUnknownTask},
		{"empty label", "", Params{}, ErrUnknownTask},
		{"zero ratio", "Summarization", Params{Ratio: ptr(0.0)}, ErrInvalidParameter},
		{"ratio above one", "Summarization", Params{Ratio: ptr(1.5)}, ErrInvalidParameter},
		{"shift zero", "Encryption", Params{Shift: ptr(0)}, ErrInvalidParameter},
		{"shift 26", "Encryption", Params{Shift: ptr(26)}, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.label, tt.params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, len(Labels))

	byLabel := make(map[Label]Info)
	for _, info := range catalog {
		byLabel[info.Label] = info
	}
	assert.Equal(t, RenderImage, byLabel[LabelWordCloud].Render)
	assert.Equal(t, RenderAudio, byLabel[LabelTextToSpeech].Render)
	assert.Equal(t, RenderStats, byLabel[LabelWordStats].Render)
	assert.Equal(t, RenderList, byLabel[LabelKeywords].Render)
	assert.Equal(t, "shift", byLabel[LabelEncryption].Params[0].Name)
	assert.Equal(t, "ratio", byLabel[LabelSummarization].Params[0].Name)
	assert.Empty(t, byLabel[LabelSentiment].Params)
}

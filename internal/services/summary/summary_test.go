package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCounter is a SentenceCounter stub returning a fixed count.
type fixedCounter struct {
	n   int
	err error
}

func (f fixedCounter) CountSentences(string) (int, error) { return f.n, f.err }

const article = "Go is an open source programming language. " +
	"The Go language makes it easy to build simple software. " +
	"Reliable software needs a simple language and good tools. " +
	"Efficient software is built with the Go toolchain. " +
	"Many teams choose Go for cloud software and network services."

func TestSummarize_InvalidRatio(t *testing.T) {
	svc := New(fixedCounter{n: 5})

	for _, ratio := range []float64{0, -0.5, 1.01} {
		_, err := svc.Summarize(article, ratio)
		assert.ErrorIs(t, err, ErrInvalidRatio, "ratio %v", ratio)
	}
}

func TestSummarize_TooShort(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		ratio float64
	}{
		{"blank text", "   ", 0, 0.3},
		{"one sentence at default ratio", "Only one sentence here.", 1, DefaultRatio},
		{"three sentences at 0.3", "One. Two. Three.", 3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(fixedCounter{n: tt.count}).Summarize(tt.text, tt.ratio)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestSummarize_KeepsRankedSentences(t *testing.T) {
	got, err := New(fixedCounter{n: 5}).Summarize(article, 0.4)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	lines := strings.Split(got, "\n")
	assert.LessOrEqual(t, len(lines), 2)

	// Every line is lifted from the article and they keep reading order.
	lower := strings.ToLower(article)
	last := -1
	for _, line := range lines {
		needle := strings.ToLower(strings.Trim(line, " .!?"))
		idx := strings.Index(lower, needle)
		require.GreaterOrEqual(t, idx, 0, "line %q not found in article", line)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestSummarize_CounterError(t *testing.T) {
	boom := errors.New("segmenter down")
	_, err := New(fixedCounter{err: boom}).Summarize(article, 0.5)
	assert.ErrorIs(t, err, boom)
}

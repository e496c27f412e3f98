package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter struct {
	n   int
	err error
}

func (f fixedCounter) CountSentences(string) (int, error) { return f.n, f.err }

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentences int
		want      Stats
	}{
		{
			name:      "case-sensitive unique words",
			text:      "The cat sat. The dog ran.",
			sentences: 2,
			want:      Stats{TotalWords: 6, UniqueWords: 5, Sentences: 2, AverageWordLength: 20.0 / 6.0},
		},
		{
			name:      "different case counts twice",
			text:      "The the THE",
			sentences: 1,
			want:      Stats{TotalWords: 3, UniqueWords: 3, Sentences: 1, AverageWordLength: 3},
		},
		{
			name:      "multibyte characters count once",
			text:      "café naïve",
			sentences: 1,
			want:      Stats{TotalWords: 2, UniqueWords: 2, Sentences: 1, AverageWordLength: 4.5},
		},
		{
			name: "no words",
			text: " \n\t ",
			want: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCalculator(fixedCounter{n: tt.sentences}).Compute(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want.TotalWords, got.TotalWords)
			assert.Equal(t, tt.want.UniqueWords, got.UniqueWords)
			assert.Equal(t, tt.want.Sentences, got.Sentences)
			assert.InDelta(t, tt.want.AverageWordLength, got.AverageWordLength, 1e-9)
		})
	}
}

func TestCompute_CounterError(t *testing.T) {
	boom := errors.New("segmenter down")
	_, err := NewCalculator(fixedCounter{err: boom}).Compute("some text")
	assert.ErrorIs(t, err, boom)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.33, Round2(20.0/6.0))
	assert.Equal(t, 0.0, Round2(0))
}

package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/language"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/nlp"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/sentiment"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/speech"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/stats"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/topic"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/wordcloud"
)

// fakes is one value implementing every service interface. Each field
// controls what the matching operation returns.
type fakes struct {
	summary    string
	entities   []nlp.Entity
	detectErr  error
	speechErr  error
	renderErr  error
	topicErr   error
	topicQuery string
	panicOn    string
}

func (f *fakes) Summarize(text string, ratio float64) (string, error) {
	if f.panicOn == "summary" {
		panic("summarizer exploded")
	}
	return f.summary, nil
}

func (f *fakes) Extract(text string, limit int) []keywords.Keyword {
	return []keywords.Keyword{{Term: "gopher", Score: 0.91234}, {Term: "burrow", Score: 0.5}}
}

func (f *fakes) Analyze(text string) sentiment.Result {
	return sentiment.Result{Polarity: 0.5, Subjectivity: 0.25, Label: sentiment.Positive}
}

func (f *fakes) Entities(text string) ([]nlp.Entity, error) { return f.entities, nil }

func (f *fakes) Detect(text string) (*language.Detection, error) {
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	return &language.Detection{Code: "EN", Name: "English", Confidence: 0.98765}, nil
}

func (f *fakes) Synthesize(ctx context.Context, text string) (*speech.Audio, error) {
	if f.speechErr != nil {
		return nil, f.speechErr
	}
	return &speech.Audio{Data: []byte("ID3"), Filename: speech.Filename, MIMEType: speech.MIMEType}, nil
}

func (f *fakes) Correct(text string) string { return "corrected" }

func (f *fakes) Render(text string) ([]byte, error) {
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (f *fakes) Compute(text string) (*stats.Stats, error) {
	return &stats.Stats{TotalWords: 6, UniqueWords: 5, Sentences: 2, AverageWordLength: 20.0 / 6.0}, nil
}

func (f *fakes) Describe(ctx context.Context, query string) (*topic.Description, error) {
	f.topicQuery = query
	if f.topicErr != nil {
		return nil, f.topicErr
	}
	return &topic.Description{Title: "Go", Summary: "Go is a language.\nIt is fast."}, nil
}

func newTestDispatcher(f *fakes) *Dispatcher {
	return NewDispatcher(Services{
		Summarizer: f, Keywords: f, Sentiment: f, Entities: f, Language: f,
		Speech: f, Spelling: f, WordCloud: f, Stats: f, Topic: f,
	})
}

func run(t *testing.T, f *fakes, task Task, text string) *Outcome {
	t.Helper()
	out, err := newTestDispatcher(f).Run(context.Background(), task, text)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, task.Label(), out.Task)
	assert.Equal(t, RenderFor(task.Label()), out.Render)
	return out
}

func TestRun_Results(t *testing.T) {
	f := &fakes{summary: "Top sentence.", entities: []nlp.Entity{{Text: "Go", Label: "GPE"}}}

	assert.Equal(t, "Top sentence.", run(t, f, Summarization{Ratio: 0.3}, "text").Text)
	assert.Len(t, run(t, f, KeywordExtraction{}, "text").Keywords, 2)
	assert.Equal(t, sentiment.Positive, run(t, f, SentimentAnalysis{}, "text").Sentiment.Label)
	assert.Equal(t, f.entities, run(t, f, NamedEntityRecognition{}, "text").Entities)
	assert.Equal(t, "EN", run(t, f, LanguageDetection{}, "text").Language.Code)
	assert.Equal(t, []byte("ID3"), run(t, f, TextToSpeech{}, "text").Audio.Data)
	assert.Equal(t, "corrected", run(t, f, SpellCheck{}, "text").Text)
	assert.NotEmpty(t, run(t, f, WordCloud{}, "text").Image)
	assert.Equal(t, 1.0, run(t, f, SimilarityCheck{Other: "abc"}, "abc").Similarity.Ratio)
	assert.Equal(t, 6, run(t, f, WordCountStatistics{}, "text").Stats.TotalWords)
	assert.Equal(t, "Def abc!", run(t, f, Encryption{Shift: 3}, "Abc xyz!").Text)

	out := run(t, f, TopicDescription{Query: "golang"}, "document text")
	assert.Equal(t, "golang", f.topicQuery)
	assert.Equal(t, "Go is a language.\nIt is fast.", out.Text)
	assert.Nil(t, out.Notice)
}

func TestRun_TopicDefaultsToDocumentText(t *testing.T) {
	f := &fakes{}
	run(t, f, TopicDescription{}, "Gophers")
	assert.Equal(t, "Gophers", f.topicQuery)
}

func TestRun_InfoNotices(t *testing.T) {
	tests := []struct {
		name string
		task Task
		code string
		msg  string
	}{
		{"summary too short", Summarization{Ratio: 0.3}, CodeTextTooShort, MsgTextTooShort},
		{"no entities", NamedEntityRecognition{}, CodeNoEntities, MsgNoEntities},
		{"no second text", SimilarityCheck{}, CodeMissingText2, MsgMissingText2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, &fakes{}, tt.task, "text")
			require.NotNil(t, out.Notice)
			assert.Equal(t, LevelInfo, out.Notice.Level)
			assert.Equal(t, tt.code, out.Notice.Code)
			assert.Equal(t, tt.msg, out.Notice.Message)
			assert.True(t, out.OK())
		})
	}

	// No similarity is computed without a second text.
	assert.Nil(t, run(t, &fakes{}, SimilarityCheck{}, "text").Similarity)
}

func TestRun_FailuresBecomeNotices(t *testing.T) {
	tests := []struct {
		name  string
		fakes *fakes
		task  Task
		level Level
		code  string
		msg   string
	}{
		{"detection", &fakes{detectErr: language.ErrDetection}, LanguageDetection{}, LevelWarning, CodeDetectionError, MsgDetectionError},
		{"length exceeded", &fakes{speechErr: &speech.LengthExceededError{Length: 5001, Max: 5000}}, TextToSpeech{}, LevelWarning, CodeLengthExceeded, MsgLengthExceeded},
		{"render", &fakes{renderErr: wordcloud.ErrRender}, WordCloud{}, LevelWarning, CodeRenderError, MsgRenderError},
		{"not found", &fakes{topicErr: topic.ErrNotFound}, TopicDescription{}, LevelWarning, CodeLookupNotFound, MsgNotFound},
		{"lookup failure", &fakes{topicErr: &topic.LookupError{Err: errors.New("timeout")}}, TopicDescription{}, LevelError, CodeLookupFailed, "Error: timeout"},
		{"other failure", &fakes{speechErr: errors.New("upstream 503")}, TextToSpeech{}, LevelError, CodeOperationFailed, "Error: upstream 503"},
		{"panic", &fakes{panicOn: "summary"}, Summarization{Ratio: 0.5}, LevelError, CodeOperationFailed, "Error: summarizer exploded"},
		{"invalid shift", &fakes{}, Encryption{Shift: 40}, LevelError, CodeOperationFailed, "Error: shift must be between 1 and 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, tt.fakes, tt.task, "text")
			require.NotNil(t, out.Notice)
			assert.Equal(t, tt.level, out.Notice.Level)
			assert.Equal(t, tt.code, out.Notice.Code)
			assert.Equal(t, tt.msg, out.Notice.Message)
			assert.False(t, out.OK())
		})
	}
}

func TestRun_Ambiguous(t *testing.T) {
	f := &fakes{topicErr: &topic.AmbiguousError{Title: "Mercury", Options: []string{"Mercury (planet)", "Mercury (element)"}}}
	out := run(t, f, TopicDescription{Query: "Mercury"}, "text")

	require.NotNil(t, out.Notice)
	assert.Equal(t, LevelWarning, out.Notice.Level)
	assert.Equal(t, CodeLookupAmbiguous, out.Notice.Code)
	assert.Equal(t, "Ambiguous topic. Options include: [Mercury (planet), Mercury (element)]", out.Notice.Message)
	assert.Equal(t, []string{"Mercury (planet)", "Mercury (element)"}, out.Notice.Options)
}

type foreignTask struct{ Summarization }

func TestRun_UnknownTask(t *testing.T) {
	d := newTestDispatcher(&fakes{})

	_, err := d.Run(context.Background(), nil, "text")
	assert.ErrorIs(t, err, ErrUnknownTask)

	_, err = d.Run(context.Background(), foreignTask{}, "text")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/cipher"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/language"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/nlp"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/sentiment"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/similarity"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/speech"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/stats"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/topic"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/wordcloud"
)

// User-facing messages.
const (
	MsgTextTooShort   = "Text too short to summarize."
	MsgNoEntities     = "No named entities found."
	MsgDetectionError = "Language detection failed."
	MsgLengthExceeded = "Text too long for TTS (max 5000 characters)."
	MsgRenderError    = "Text too short or invalid for word cloud."
	MsgMissingText2   = "Enter a second text to compare."
	MsgNotFound       = "Topic not found on Wikipedia."
)

// Go Pattern: The dispatcher depends on small interfaces, not on concrete
// services. main() wires in the real ones; tests wire in fakes.

type Summarizer interface {
	Summarize(text string, ratio float64) (string, error)
}

type KeywordExtractor interface {
	Extract(text string, limit int) []keywords.Keyword
}

type SentimentAnalyzer interface {
	Analyze(text string) sentiment.Result
}

type EntityRecognizer interface {
	Entities(text string) ([]nlp.Entity, error)
}

type LanguageDetector interface {
	Detect(text string) (*language.Detection, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*speech.Audio, error)
}

type SpellChecker interface {
	Correct(text string) string
}

type CloudRenderer interface {
	Render(text string) ([]byte, error)
}

type StatsCalculator interface {
	Compute(text string) (*stats.Stats, error)
}

type TopicDescriber interface {
	Describe(ctx context.Context, query string) (*topic.Description, error)
}

// Services are the operations a Dispatcher can call.
type Services struct {
	Summarizer Summarizer
	Keywords   KeywordExtractor
	Sentiment  SentimentAnalyzer
	Entities   EntityRecognizer
	Language   LanguageDetector
	Speech     SpeechSynthesizer
	Spelling   SpellChecker
	WordCloud  CloudRenderer
	Stats      StatsCalculator
	Topic      TopicDescriber
}

// Dispatcher runs one task at a time against a document's text.
type Dispatcher struct {
	svc Services
}

// NewDispatcher creates a dispatcher over the given services.
func NewDispatcher(svc Services) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Run executes task on text and returns its outcome.
//
// Operation failures never surface as errors: they become a Notice on the
// Outcome (and so does a panic inside an operation). The only error is
// ErrUnknownTask for a nil or foreign Task, which is a programming mistake.
func (d *Dispatcher) Run(ctx context.Context, task Task, text string) (out *Outcome, err error) {
	if task == nil {
		return nil, fmt.Errorf("%w: nil task", ErrUnknownTask)
	}

	out = &Outcome{Task: task.Label(), Render: RenderFor(task.Label())}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("💥 Task %q panicked: %v", task.Label(), r)
			out = &Outcome{
				Task:   task.Label(),
				Render: RenderFor(task.Label()),
				Notice: &Notice{Level: LevelError, Code: CodeOperationFailed, Message: fmt.Sprintf("Error: %v", r)},
			}
			err = nil
		}
	}()

	var opErr error
	switch t := task.(type) {
	case Summarization:
		out.Text, opErr = d.svc.Summarizer.Summarize(text, t.Ratio)
		if opErr == nil && out.Text == "" {
			out.Notice = &Notice{Level: LevelInfo, Code: CodeTextTooShort, Message: MsgTextTooShort}
		}

	case KeywordExtraction:
		out.Keywords = d.svc.Keywords.Extract(text, keywords.DefaultLimit)

	case SentimentAnalysis:
		res := d.svc.Sentiment.Analyze(text)
		out.Sentiment = &res

	case NamedEntityRecognition:
		out.Entities, opErr = d.svc.Entities.Entities(text)
		if opErr == nil && len(out.Entities) == 0 {
			out.Entities = []nlp.Entity{}
			out.Notice = &Notice{Level: LevelInfo, Code: CodeNoEntities, Message: MsgNoEntities}
		}

	case LanguageDetection:
		out.Language, opErr = d.svc.Language.Detect(text)

	case TextToSpeech:
		out.Audio, opErr = d.svc.Speech.Synthesize(ctx, text)

	case SpellCheck:
		out.Text = d.svc.Spelling.Correct(text)

	case WordCloud:
		out.Image, opErr = d.svc.WordCloud.Render(text)

	case SimilarityCheck:
		if t.Other == "" {
			out.Notice = &Notice{Level: LevelInfo, Code: CodeMissingText2, Message: MsgMissingText2}
			break
		}
		res := similarity.Compare(text, t.Other)
		out.Similarity = &res

	case WordCountStatistics:
		out.Stats, opErr = d.svc.Stats.Compute(text)

	case TopicDescription:
		query := t.Query
		if strings.TrimSpace(query) == "" {
			query = text
		}
		out.Topic, opErr = d.svc.Topic.Describe(ctx, query)
		if opErr == nil {
			out.Text = out.Topic.Summary
		}

	case Encryption:
		out.Text, opErr = cipher.Encrypt(text, t.Shift)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTask, task)
	}

	if opErr != nil {
		out.Notice = noticeFor(opErr)
		log.Warnf("⚠️  Task %q failed: %v", task.Label(), opErr)
	}
	return out, nil
}

// noticeFor maps an operation error onto the message a user sees.
func noticeFor(err error) *Notice {
	var (
		lengthErr *speech.LengthExceededError
		ambiguous *topic.AmbiguousError
		lookupErr *topic.LookupError
	)

	switch {
	case errors.Is(err, language.ErrDetection):
		return &Notice{Level: LevelWarning, Code: CodeDetectionError, Message: MsgDetectionError}
	case errors.As(err, &lengthErr):
		return &Notice{Level: LevelWarning, Code: CodeLengthExceeded, Message: MsgLengthExceeded}
	case errors.Is(err, wordcloud.ErrRender):
		return &Notice{Level: LevelWarning, Code: CodeRenderError, Message: MsgRenderError}
	case errors.As(err, &ambiguous):
		return &Notice{
			Level:   LevelWarning,
			Code:    CodeLookupAmbiguous,
			Message: fmt.Sprintf("Ambiguous topic. Options include: [%s]", strings.Join(ambiguous.Options, ", ")),
			Options: ambiguous.Options,
		}
	case errors.Is(err, topic.ErrNotFound):
		return &Notice{Level: LevelWarning, Code: CodeLookupNotFound, Message: MsgNotFound}
	case errors.As(err, &lookupErr):
		return &Notice{Level: LevelError, Code: CodeLookupFailed, Message: "Error: " + lookupErr.Error()}
	default:
		return &Notice{Level: LevelError, Code: CodeOperationFailed, Message: "Error: " + err.Error()}
	}
}

package tasks

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/language"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/nlp"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/sentiment"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/similarity"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/speech"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/stats"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/topic"
)

// Render tells a client which widget fits an outcome.
type Render string

const (
	RenderText  Render = "text"
	RenderList  Render = "list"
	RenderImage Render = "image"
	RenderAudio Render = "audio"
	RenderStats Render = "stats"
)

// RenderFor returns the presentation hint for a task.
func RenderFor(l Label) Render {
	switch l {
	case LabelKeywords, LabelEntities:
		return RenderList
	case LabelWordCloud:
		return RenderImage
	case LabelTextToSpeech:
		return RenderAudio
	case LabelWordStats:
		return RenderStats
	default:
		return RenderText
	}
}

// Level is how prominently a notice should be shown.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice codes.
const (
	CodeTextTooShort    = "text_too_short"
	CodeNoEntities      = "no_entities"
	CodeDetectionError  = "detection_error"
	CodeLengthExceeded  = "length_exceeded"
	CodeRenderError     = "render_error"
	CodeMissingText2    = "missing_text2"
	CodeLookupAmbiguous = "lookup_ambiguous"
	CodeLookupNotFound  = "lookup_not_found"
	CodeLookupFailed    = "lookup_failed"
	CodeOperationFailed = "operation_failed"
)

// Notice is a message for the user that accompanies (or replaces) a result.
// A failed task produces an Outcome with a Notice, never a crash.
type Notice struct {
	Level   Level    `json:"level"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Options []string `json:"options,omitempty"`
}

// Outcome is the result of running one task. Exactly the field matching the
// task is set, unless Notice explains why there is no result.
type Outcome struct {
	Task   Label  `json:"task"`
	Render Render `json:"render"`

	Text       string              `json:"text,omitempty"`
	Keywords   []keywords.Keyword  `json:"keywords,omitempty"`
	Sentiment  *sentiment.Result   `json:"sentiment,omitempty"`
	Entities   []nlp.Entity        `json:"entities,omitempty"`
	Language   *language.Detection `json:"language,omitempty"`
	Similarity *similarity.Result  `json:"similarity,omitempty"`
	Stats      *stats.Stats        `json:"stats,omitempty"`
	Topic      *topic.Description  `json:"topic,omitempty"`
	Audio      *speech.Audio       `json:"-"`
	Image      []byte              `json:"-"`

	Notice *Notice `json:"notice,omitempty"`
}

// OK reports whether the task produced a result without a warning or error.
func (o *Outcome) OK() bool {
	return o.Notice == nil || o.Notice.Level == LevelInfo
}

// Lines renders the outcome as human-readable lines, rounded the way the
// results are shown to users. Audio and images have no text form beyond a
// short description.
func (o *Outcome) Lines() []string {
	var lines []string
	switch {
	case o.Keywords != nil:
		for _, k := range o.Keywords {
			lines = append(lines, fmt.Sprintf("- %s (Score: %s)", k.Term, trim(round(k.Score, 3))))
		}
	case o.Sentiment != nil:
		lines = append(lines,
			fmt.Sprintf("Sentiment: %s", o.Sentiment.Label),
			fmt.Sprintf("Polarity: %.3f", o.Sentiment.Polarity),
			fmt.Sprintf("Subjectivity: %.3f", o.Sentiment.Subjectivity),
		)
	case o.Entities != nil:
		for _, e := range o.Entities {
			lines = append(lines, fmt.Sprintf("%s (%s)", e.Text, e.Label))
		}
	case o.Language != nil:
		lines = append(lines,
			fmt.Sprintf("Language: %s", o.Language.Code),
			fmt.Sprintf("Confidence: %s", trim(round(o.Language.Confidence, 3))),
		)
	case o.Similarity != nil:
		lines = append(lines, fmt.Sprintf("Similarity: %s%%", trim(o.Similarity.Percentage)))
	case o.Stats != nil:
		lines = append(lines,
			fmt.Sprintf("Total Words: %d", o.Stats.TotalWords),
			fmt.Sprintf("Unique Words: %d", o.Stats.UniqueWords),
			fmt.Sprintf("Total Sentences: %d", o.Stats.Sentences),
			fmt.Sprintf("Average Word Length: %s", trim(stats.Round2(o.Stats.AverageWordLength))),
		)
	case o.Topic != nil:
		lines = append(lines, strings.Split(o.Topic.Summary, "\n")...)
	case o.Audio != nil:
		lines = append(lines, fmt.Sprintf("%s (%s, %d bytes)", o.Audio.Filename, o.Audio.MIMEType, len(o.Audio.Data)))
	case o.Image != nil:
		lines = append(lines, fmt.Sprintf("PNG image (%d bytes)", len(o.Image)))
	case o.Text != "":
		lines = append(lines, strings.Split(o.Text, "\n")...)
	}
	if o.Notice != nil {
		lines = append(lines, o.Notice.Message)
	}
	return lines
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// trim formats v without trailing zeros: 0.5 not 0.500.
func trim(v float64) string {
	return fmt.Sprint(v)
}

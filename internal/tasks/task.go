// Package tasks defines the twelve text-analysis tasks and the dispatcher
// that runs them.
//
// Go Pattern: A "sealed" interface. Task has an unexported method, so only
// types in this package can implement it. The dispatcher switches over the
// concrete types, and each type carries exactly the parameter its task needs:
// a Summarization always has a ratio, an Encryption always has a shift.
package tasks

import (
	"errors"
	"fmt"
	"math"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/cipher"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/summary"
)

// Label is the user-facing name of a task.
type Label string

const (
	LabelSummarization Label = "Summarization"
	LabelKeywords      Label = "Keyword Extraction"
	LabelSentiment     Label = "Sentiment Analysis"
	LabelEntities      Label = "Named Entity Recognition"
	LabelLanguage      Label = "Language Detection"
	LabelTextToSpeech  Label = "Text-to-Speech"
	LabelSpellCheck    Label = "Grammar & Spell Checking"
	LabelWordCloud     Label = "Word Cloud"
	LabelSimilarity    Label = "Text Similarity Check"
	LabelWordStats     Label = "Word Count Statistics"
	LabelTopic         Label = "Topic Description"
	LabelEncryption    Label = "Encryption"
)

// Labels lists every task in display order.
var Labels = []Label{
	LabelSummarization,
	LabelKeywords,
	LabelSentiment,
	LabelEntities,
	LabelLanguage,
	LabelTextToSpeech,
	LabelSpellCheck,
	LabelWordCloud,
	LabelSimilarity,
	LabelWordStats,
	LabelTopic,
	LabelEncryption,
}

var (
	// ErrUnknownTask means the label is not one of Labels.
	ErrUnknownTask = errors.New("unknown task")
	// ErrInvalidParameter means a task parameter is out of range.
	ErrInvalidParameter = errors.New("invalid task parameter")
)

// Task is one of the twelve task variants below. A TopicDescription with an
// empty Query looks up the document text itself.
type Task interface {
	Label() Label
	task()
}

type (
	Summarization          struct{ Ratio float64 }
	KeywordExtraction      struct{}
	SentimentAnalysis      struct{}
	NamedEntityRecognition struct{}
	LanguageDetection      struct{}
	TextToSpeech           struct{}
	SpellCheck             struct{}
	WordCloud              struct{}
	SimilarityCheck        struct{ Other string }
	WordCountStatistics    struct{}
	TopicDescription       struct{ Query string }
	Encryption             struct{ Shift int }
)

func (Summarization) Label() Label          { return LabelSummarization }
func (KeywordExtraction) Label() Label      { return LabelKeywords }
func (SentimentAnalysis) Label() Label      { return LabelSentiment }
func (NamedEntityRecognition) Label() Label { return LabelEntities }
func (LanguageDetection) Label() Label      { return LabelLanguage }
func (TextToSpeech) Label() Label           { return LabelTextToSpeech }
func (SpellCheck) Label() Label             { return LabelSpellCheck }
func (WordCloud) Label() Label              { return LabelWordCloud }
func (SimilarityCheck) Label() Label        { return LabelSimilarity }
func (WordCountStatistics) Label() Label    { return LabelWordStats }
func (TopicDescription) Label() Label       { return LabelTopic }
func (Encryption) Label() Label             { return LabelEncryption }

func (Summarization) task()          {}
func (KeywordExtraction) task()      {}
func (SentimentAnalysis) task()      {}
func (NamedEntityRecognition) task() {}
func (LanguageDetection) task()      {}
func (TextToSpeech) task()           {}
func (SpellCheck) task()             {}
func (WordCloud) task()              {}
func (SimilarityCheck) task()        {}
func (WordCountStatistics) task()    {}
func (TopicDescription) task()       {}
func (Encryption) task()             {}

// Params carries the optional task parameters as they arrive from a client.
// Only the one matching the task is used.
type Params struct {
	Ratio *float64 `json:"ratio,omitempty" form:"ratio"`
	Shift *int     `json:"shift,omitempty" form:"shift"`
	Text2 string   `json:"text2,omitempty" form:"text2"`
	Query string   `json:"query,omitempty" form:"query"`
}

// Parse turns a label and its parameters into a Task, filling in defaults:
// ratio 0.3 for Summarization and shift 3 for Encryption.
func Parse(label string, p Params) (Task, error) {
	switch Label(label) {
	case LabelSummarization:
		ratio := summary.DefaultRatio
		if p.Ratio != nil {
			ratio = *p.Ratio
		}
		if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
			return nil, fmt.Errorf("%w: ratio must be in (0, 1], got %v", ErrInvalidParameter, ratio)
		}
		return Summarization{Ratio: ratio}, nil
	case LabelKeywords:
		return KeywordExtraction{}, nil
	case LabelSentiment:
		return SentimentAnalysis{}, nil
	case LabelEntities:
		return NamedEntityRecognition{}, nil
	case LabelLanguage:
		return LanguageDetection{}, nil
	case LabelTextToSpeech:
		return TextToSpeech{}, nil
	case LabelSpellCheck:
		return SpellCheck{}, nil
	case LabelWordCloud:
		return WordCloud{}, nil
	case LabelSimilarity:
		return SimilarityCheck{Other: p.Text2}, nil
	case LabelWordStats:
		return WordCountStatistics{}, nil
	case LabelTopic:
		return TopicDescription{Query: p.Query}, nil
	case LabelEncryption:
		shift := cipher.DefaultShift
		if p.Shift != nil {
			shift = *p.Shift
		}
		if err := cipher.ValidateShift(shift); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
		return Encryption{Shift: shift}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, label)
	}
}

// ParamInfo documents one task parameter.
type ParamInfo struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Default any     `json:"default,omitempty"`
}

// Info describes a task for clients building a task picker.
type Info struct {
	Label  Label       `json:"label"`
	Render Render      `json:"render"`
	Params []ParamInfo `json:"params"`
}

// Catalog describes every task in display order.
func Catalog() []Info {
	infos := make([]Info, 0, len(Labels))
	for _, l := range Labels {
		info := Info{Label: l, Render: RenderFor(l), Params: []ParamInfo{}}
		switch l {
		case LabelSummarization:
			info.Params = append(info.Params, ParamInfo{Name: "ratio", Type: "number", Min: 0.1, Max: 1, Default: summary.DefaultRatio})
		case LabelSimilarity:
			info.Params = append(info.Params, ParamInfo{Name: "text2", Type: "string"})
		case LabelTopic:
			info.Params = append(info.Params, ParamInfo{Name: "query", Type: "string"})
		case LabelEncryption:
			info.Params = append(info.Params, ParamInfo{Name: "shift", Type: "integer", Min: 1, Max: 25, Default: cipher.DefaultShift})
		}
		infos = append(infos, info)
	}
	return infos
}

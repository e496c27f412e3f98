// Package language guesses which natural language a text is written in.
package language

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// ErrDetection means no language could be identified, or the text is too
// short or ambiguous for the guess to be trusted.
var ErrDetection = errors.New("language could not be detected")

// Detection is the detected language with its ISO 639-1 code.
type Detection struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Detector identifies languages with trigram statistics.
type Detector struct{}

// NewDetector creates a language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the most likely language of text.
// The code is upper-cased ("EN", "FR"). Blank input, scripts whatlanggo can't
// map to a two-letter code, and guesses below whatlanggo's reliability
// threshold yield ErrDetection.
func (d *Detector) Detect(text string) (*Detection, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrDetection
	}

	info := whatlanggo.Detect(text)
	// No script means no letters at all (digits, punctuation); Lang is then
	// unset and must not be looked up.
	if info.Script == nil {
		return nil, ErrDetection
	}

	// A word or two scores every language about the same; "ok" comes out
	// as Igbo with a confidence near zero.
	if !info.IsReliable() {
		return nil, ErrDetection
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return nil, ErrDetection
	}

	return &Detection{
		Code:       strings.ToUpper(code),
		Name:       info.Lang.String(),
		Confidence: info.Confidence,
	}, nil
}

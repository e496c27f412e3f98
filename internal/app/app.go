// Package app builds the task dispatcher and every analysis service behind
// it from the configuration. The server and the CLI share it, so both run
// exactly the same pipeline.
package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/config"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/language"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/nlp"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/sentiment"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/speech"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/spelling"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/stats"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/summary"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/topic"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/wordcloud"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

// NewDispatcher creates every service and wires them into a dispatcher.
//
// Go Pattern: Process-wide state (the NLP pipeline, the spelling model, the
// parsed font) is created once here and passed down explicitly. Nothing is
// loaded lazily from a global.
func NewDispatcher(cfg *config.Config) (*tasks.Dispatcher, error) {
	pipeline, err := nlp.NewPipeline()
	if err != nil {
		return nil, fmt.Errorf("failed to load NLP pipeline: %w", err)
	}
	log.Println("✅ NLP pipeline loaded")

	checker, err := spelling.NewChecker(cfg.SpellingDictionary)
	if err != nil {
		return nil, fmt.Errorf("failed to load spelling dictionary: %w", err)
	}

	renderer, err := wordcloud.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load word cloud font: %w", err)
	}

	synthesizer := speech.NewSynthesizer(speech.Options{
		BaseURL:   cfg.TTSBaseURL,
		Language:  cfg.TTSLanguage,
		AudioDir:  cfg.AudioDir,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	})

	wiki := topic.NewClient(topic.Options{
		APIURL:    cfg.WikipediaAPIURL,
		UserAgent: cfg.UserAgent,
		RateLimit: cfg.WikipediaRateLimit,
		Timeout:   cfg.HTTPTimeout,
	})
	log.Printf("🌍 Topic lookups via %s", cfg.WikipediaAPIURL)

	return tasks.NewDispatcher(tasks.Services{
		Summarizer: summary.New(pipeline),
		Keywords:   keywords.NewExtractor(),
		Sentiment:  sentiment.NewAnalyzer(),
		Entities:   pipeline,
		Language:   language.NewDetector(),
		Speech:     synthesizer,
		Spelling:   checker,
		WordCloud:  renderer,
		Stats:      stats.NewCalculator(pipeline),
		Topic:      wiki,
	}), nil
}

// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// A local .env file is loaded first (handy in development), then envconfig
// fills the Config struct from the environment using struct tags, and the
// validator checks the values before anything else starts.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// defaultJWTSecret is only acceptable outside release mode.
const defaultJWTSecret = "dev-jwt-secret-change-in-production"

// Config holds all application configuration.
// Go Pattern: The `envconfig` tag names the variable, `default` is used when
// it is unset, and `validate` is read by go-playground/validator.
type Config struct {
	// Server settings
	Port    string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	GinMode string `envconfig:"GIN_MODE" default:"debug" validate:"oneof=debug release test"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn warning error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	// Sessions: a signed token carries the session ID, the document itself
	// lives in memory and expires after SessionTTL.
	JWTSecret  string        `envconfig:"JWT_SECRET" default:"dev-jwt-secret-change-in-production" validate:"required"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"1h" validate:"gt=0"`

	// Uploads
	MaxUploadSize int64 `envconfig:"MAX_UPLOAD_SIZE" default:"52428800" validate:"gt=0"` // 50MB

	// Rate limiting (requests per second per client, plus burst)
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"5" validate:"gte=0"`
	RateBurst int     `envconfig:"RATE_BURST" default:"20" validate:"gte=1"`

	// CORS: in production, set this to your frontend URL
	AllowedOrigins []string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173" validate:"min=1"`

	// Text-to-Speech upstream (Google Translate TTS endpoint)
	TTSBaseURL  string `envconfig:"TTS_BASE_URL" default:"https://translate.google.com/translate_tts" validate:"url"`
	TTSLanguage string `envconfig:"TTS_LANGUAGE" default:"en" validate:"required"`
	AudioDir    string `envconfig:"AUDIO_DIR"` // Empty = os.TempDir()

	// Wikipedia (Topic Description)
	WikipediaAPIURL    string  `envconfig:"WIKIPEDIA_API_URL" default:"https://en.wikipedia.org/w/api.php" validate:"url"`
	WikipediaRateLimit float64 `envconfig:"WIKIPEDIA_RATE_LIMIT" default:"0" validate:"gte=0"` // 0 = unlimited

	// Outbound HTTP
	UserAgent   string        `envconfig:"USER_AGENT" default:"text-analyzer-api/1.0 (https://github.com/Shimizu-Technology/text-analyzer-api)"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`

	// Optional extra word list for the spell checker (one word per line)
	SpellingDictionary string `envconfig:"SPELLING_DICTIONARY"`
}

// Load reads configuration from the environment with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). The caller
// decides what to do; main() refuses to start on a bad config.
func Load() (*Config, error) {
	// A missing .env file is normal in production, ignore that error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the production-only rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Security: JWT secret MUST be set in production mode.
	// In release mode, we refuse to start with the default secret.
	if c.GinMode == "release" && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production; refusing to start with default secret")
	}

	return nil
}

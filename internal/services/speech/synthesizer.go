// Package speech turns text into spoken MP3 audio.
//
// Go Pattern: Like any external API call, synthesis goes through our own
// http.Client with a timeout. The upstream is the Google Translate speech
// endpoint, which only accepts short snippets, so long text is split into
// chunks and the MP3 responses are appended (MP3 frames concatenate cleanly).
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// MaxCharacters is the longest text we will synthesize.
	MaxCharacters = 5000

	// Filename and MIMEType describe the downloadable artifact.
	Filename = "output.mp3"
	MIMEType = "audio/mp3"

	DefaultBaseURL = "https://translate.google.com/translate_tts"

	// chunkSize is the upstream limit per request.
	chunkSize = 100
)

// ErrEmptyText means there is nothing to read out.
var ErrEmptyText = errors.New("no text to synthesize")

// LengthExceededError is returned, before any request is made, for text
// longer than MaxCharacters.
type LengthExceededError struct {
	Length int
	Max    int
}

func (e *LengthExceededError) Error() string {
	return fmt.Sprintf("text too long for TTS (max %d characters, got %d)", e.Max, e.Length)
}

// Audio is a synthesized MP3.
type Audio struct {
	Data     []byte
	Filename string
	MIMEType string
}

// Base64 returns the audio bytes base64-encoded.
func (a *Audio) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURI returns the audio as an inline data: URI.
func (a *Audio) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64()
}

// DownloadLink returns an HTML anchor that downloads the audio.
func (a *Audio) DownloadLink() string {
	return fmt.Sprintf(`<a href="%s" download="%s">Download MP3</a>`, a.DataURI(), a.Filename)
}

// Options configures a Synthesizer.
type Options struct {
	BaseURL   string
	Language  string
	AudioDir  string
	UserAgent string
	Timeout   time.Duration
}

// Synthesizer calls the speech endpoint.
type Synthesizer struct {
	baseURL    string
	language   string
	audioDir   string
	userAgent  string
	httpClient *http.Client
	splitter   textsplitter.RecursiveCharacter
}

// NewSynthesizer creates a Synthesizer. Empty options fall back to defaults.
func NewSynthesizer(opts Options) *Synthesizer {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.AudioDir == "" {
		opts.AudioDir = os.TempDir()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Synthesizer{
		baseURL:   opts.BaseURL,
		language:  opts.Language,
		audioDir:  opts.AudioDir,
		userAgent: opts.UserAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		// One character is kept free for the period reattachPeriods may add.
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize-1),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
			textsplitter.WithKeepSeparator(true),
		),
	}
}

// CheckLength rejects text longer than MaxCharacters (counted in characters,
// not bytes).
func CheckLength(text string) error {
	if n := utf8.RuneCountInString(text); n > MaxCharacters {
		return &LengthExceededError{Length: n, Max: MaxCharacters}
	}
	return nil
}

// Synthesize reads text out loud and returns the MP3.
//
// The audio is streamed into its own file under the audio directory, which is
// closed before being read back and removed afterwards; concurrent calls never
// share a file.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if err := CheckLength(text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	chunks, err := s.split(text)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	path := filepath.Join(s.audioDir, uuid.NewString()+".mp3")
	defer os.Remove(path)

	if err := s.writeAudio(ctx, path, chunks); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	log.Printf("🔊 Synthesized %d chunks (%d bytes)", len(chunks), len(data))
	return &Audio{Data: data, Filename: Filename, MIMEType: MIMEType}, nil
}

// split cuts text into chunks the upstream accepts, preferring paragraph,
// line and sentence boundaries.
func (s *Synthesizer) split(text string) ([]string, error) {
	chunks, err := s.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}
	return reattachPeriods(chunks), nil
}

// reattachPeriods moves a sentence's period back from the start of the next
// chunk, where the splitter leaves the ". " separator, so each chunk ends
// its sentence and is read with a pause. Blank chunks are dropped.
func reattachPeriods(chunks []string) []string {
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if len(out) > 0 {
			if rest, ok := strings.CutPrefix(chunk, "."); ok {
				out[len(out)-1] += "."
				chunk = strings.TrimSpace(rest)
			}
		}
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

func (s *Synthesizer) writeAudio(ctx context.Context, path string, chunks []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if err := s.fetchChunk(ctx, f, chunk, i, len(chunks)); err != nil {
			return err
		}
	}
	return f.Close()
}

func (s *Synthesizer) fetchChunk(ctx context.Context, w io.Writer, chunk string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", s.language)
	q.Set("q", chunk)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, string(body))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	return nil
}

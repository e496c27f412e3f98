// Package topic looks up a short encyclopedia description of a topic.
//
// It talks to the MediaWiki Action API the same way the Wikipedia
// "summary" helpers do: search for the best matching title (or the search
// suggestion), resolve the page, and fetch the first sentences of its plain
// text extract. Disambiguation pages are reported with their options instead.
package topic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

	// DefaultSentences is how long a description is.
	DefaultSentences = 3

	// maxQueryLength is the longest search string the API accepts.
	maxQueryLength = 300
)

// ErrNotFound means no page matches the query.
var ErrNotFound = errors.New("topic not found on Wikipedia")

// AmbiguousError means the query resolves to a disambiguation page.
type AmbiguousError struct {
	Title   string
	Options []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q may refer to: %s", e.Title, strings.Join(e.Options, ", "))
}

// LookupError wraps any other lookup failure (network, API error, bad JSON).
type LookupError struct {
	Err error
}

func (e *LookupError) Error() string { return e.Err.Error() }
func (e *LookupError) Unwrap() error { return e.Err }

// Description is the result of a successful lookup.
type Description struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// Options configures a Client.
type Options struct {
	APIURL    string
	UserAgent string
	// RateLimit is the maximum requests per second; 0 means unlimited.
	RateLimit float64
	Timeout   time.Duration
	Sentences int
}

// Client queries the MediaWiki API.
type Client struct {
	apiURL     string
	userAgent  string
	sentences  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Wikipedia client.
func NewClient(opts Options) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Sentences == 0 {
		opts.Sentences = DefaultSentences
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &Client{
		apiURL:     opts.APIURL,
		userAgent:  opts.UserAgent,
		sentences:  opts.Sentences,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// apiError is the error envelope every MediaWiki response may carry.
type apiError struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

type searchResponse struct {
	apiError
	Query struct {
		SearchInfo struct {
			Suggestion string `json:"suggestion"`
		} `json:"searchinfo"`
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type pageResponse struct {
	apiError
	Query struct {
		Pages []struct {
			Title     string            `json:"title"`
			Missing   bool              `json:"missing"`
			Invalid   bool              `json:"invalid"`
			FullURL   string            `json:"fullurl"`
			Extract   string            `json:"extract"`
			PageProps map[string]string `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

type parseResponse struct {
	apiError
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

// Describe returns the first sentences of the best matching article for
// query, one sentence per line.
func (c *Client) Describe(ctx context.Context, query string) (*Description, error) {
	query = truncate(strings.Join(strings.Fields(query), " "), maxQueryLength)
	if query == "" {
		return nil, ErrNotFound
	}

	title, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	page, err := c.page(ctx, title)
	if err != nil {
		return nil, err
	}
	if _, ok := page.PageProps["disambiguation"]; ok {
		options, err := c.disambiguationOptions(ctx, page.Title)
		if err != nil {
			return nil, err
		}
		return nil, &AmbiguousError{Title: page.Title, Options: options}
	}

	extract, err := c.extract(ctx, page.Title)
	if err != nil {
		return nil, err
	}

	log.Debugf("📚 Wikipedia: %q resolved to %q", query, page.Title)
	return &Description{
		Title:   page.Title,
		Summary: OneSentencePerLine(extract),
		URL:     page.FullURL,
	}, nil
}

// OneSentencePerLine breaks text after every ". ".
func OneSentencePerLine(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ". ", ".\n")
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	var resp searchResponse
	err := c.get(ctx, url.Values{
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"1"},
		"srinfo":   {"suggestion"},
		"srprop":   {""},
	}, &resp)
	if err != nil {
		return "", err
	}

	if s := resp.Query.SearchInfo.Suggestion; s != "" {
		return s, nil
	}
	if len(resp.Query.Search) == 0 {
		return "", ErrNotFound
	}
	return resp.Query.Search[0].Title, nil
}

// pageInfo is the resolved page behind a title, after redirects.
type pageInfo struct {
	Title     string
	FullURL   string
	PageProps map[string]string
}

func (c *Client) page(ctx context.Context, title string) (*pageInfo, error) {
	var resp pageResponse
	err := c.get(ctx, url.Values{
		"prop":      {"info|pageprops"},
		"ppprop":    {"disambiguation"},
		"inprop":    {"url"},
		"redirects": {"1"},
		"titles":    {title},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Query.Pages) == 0 {
		return nil, ErrNotFound
	}
	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return nil, ErrNotFound
	}
	return &pageInfo{Title: p.Title, FullURL: p.FullURL, PageProps: p.PageProps}, nil
}

func (c *Client) extract(ctx context.Context, title string) (string, error) {
	var resp pageResponse
	err := c.get(ctx, url.Values{
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"exsentences": {fmt.Sprint(c.sentences)},
		"redirects":   {"1"},
		"titles":      {title},
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return "", ErrNotFound
	}
	return resp.Query.Pages[0].Extract, nil
}

// disambiguationOptions lists the link text of every entry on a
// disambiguation page, skipping the table of contents.
func (c *Client) disambiguationOptions(ctx context.Context, title string) ([]string, error) {
	var resp parseResponse
	err := c.get(ctx, url.Values{
		"action": {"parse"},
		"prop":   {"text"},
		"page":   {title},
	}, &resp)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Parse.Text))
	if err != nil {
		return nil, &LookupError{Err: fmt.Errorf("failed to parse disambiguation page: %w", err)}
	}

	var options []string
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		if class, _ := li.Attr("class"); strings.Contains(class, "tocsection") {
			return
		}
		if text := strings.TrimSpace(li.Find("a").First().Text()); text != "" {
			options = append(options, text)
		}
	})
	return options, nil
}

// get performs one rate-limited API call and decodes the JSON reply into out.
// Everything that goes wrong here is a LookupError.
func (c *Client) get(ctx context.Context, params url.Values, out interface{ apiErr() *apiError }) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &LookupError{Err: fmt.Errorf("rate limiter: %w", err)}
	}

	if params.Get("action") == "" {
		params.Set("action", "query")
	}
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return &LookupError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &LookupError{Err: fmt.Errorf("wikipedia request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &LookupError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &LookupError{Err: fmt.Errorf("wikipedia returned status %d", resp.StatusCode)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &LookupError{Err: fmt.Errorf("failed to parse wikipedia response: %w", err)}
	}
	if e := out.apiErr(); e.Error != nil {
		return &LookupError{Err: fmt.Errorf("wikipedia API error %s: %s", e.Error.Code, e.Error.Info)}
	}
	return nil
}

func (e *apiError) apiErr() *apiError { return e }

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

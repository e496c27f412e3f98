package topic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWiki is a tiny MediaWiki API with three articles.
func fakeWiki(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "2", q.Get("formatversion"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case q.Get("list") == "search":
			switch q.Get("srsearch") {
			case "golang":
				_, _ = w.Write([]byte(`{"query":{"searchinfo":{},"search":[{"title":"Go (programming language)"}]}}`))
			case "mercury":
				_, _ = w.Write([]byte(`{"query":{"searchinfo":{},"search":[{"title":"Mercury"}]}}`))
			case "gopehr":
				_, _ = w.Write([]byte(`{"query":{"searchinfo":{"suggestion":"Gopher"},"search":[]}}`))
			case "broken":
				_, _ = w.Write([]byte(`{"error":{"code":"internal_api_error","info":"boom"}}`))
			default:
				_, _ = w.Write([]byte(`{"query":{"searchinfo":{},"search":[]}}`))
			}

		case q.Get("prop") == "info|pageprops":
			switch q.Get("titles") {
			case "Mercury":
				_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Mercury","pageprops":{"disambiguation":""}}]}}`))
			case "Gopher":
				_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Gopher","missing":true}]}}`))
			default:
				_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Go (programming language)","fullurl":"https://en.wikipedia.org/wiki/Go_(programming_language)"}]}}`))
			}

		case q.Get("prop") == "extracts":
			assert.Equal(t, "3", q.Get("exsentences"))
			_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Go (programming language)","extract":"Go is a language. It is compiled. It was designed at Google."}]}}`))

		case q.Get("action") == "parse":
			_, _ = w.Write([]byte(`{"parse":{"title":"Mercury","text":"<div><ul><li class=\"toclevel-1 tocsection-1\"><a href=\"#Science\">Science</a></li></ul><ul><li><a href=\"/wiki/Mercury_(planet)\">Mercury (planet)</a>, the closest planet to the Sun</li><li><a href=\"/wiki/Mercury_(element)\">Mercury (element)</a>, a chemical element</li><li>No link here</li></ul></div>"}}`))

		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	return NewClient(Options{APIURL: fakeWiki(t).URL, UserAgent: "text-analyzer-test"})
}

func TestDescribe(t *testing.T) {
	got, err := newTestClient(t).Describe(context.Background(), "  golang \n")
	require.NoError(t, err)

	assert.Equal(t, "Go (programming language)", got.Title)
	assert.Equal(t, "Go is a language.\nIt is compiled.\nIt was designed at Google.", got.Summary)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)", got.URL)
}

func TestDescribe_Ambiguous(t *testing.T) {
	_, err := newTestClient(t).Describe(context.Background(), "mercury")

	var ambiguous *AmbiguousError
	require.True(t, errors.As(err, &ambiguous), "got %v", err)
	assert.Equal(t, "Mercury", ambiguous.Title)
	assert.Equal(t, []string{"Mercury (planet)", "Mercury (element)"}, ambiguous.Options)
}

func TestDescribe_NotFound(t *testing.T) {
	c := newTestClient(t)

	for _, query := range []string{"no such topic", "gopehr", "   "} {
		_, err := c.Describe(context.Background(), query)
		assert.ErrorIs(t, err, ErrNotFound, "query %q", query)
	}
}

func TestDescribe_OtherFailures(t *testing.T) {
	_, err := newTestClient(t).Describe(context.Background(), "broken")
	var lookup *LookupError
	require.True(t, errors.As(err, &lookup))
	assert.Contains(t, err.Error(), "boom")

	// Unreachable server.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err = NewClient(Options{APIURL: srv.URL}).Describe(context.Background(), "golang")
	assert.True(t, errors.As(err, &lookup))
}

func TestOneSentencePerLine(t *testing.T) {
	assert.Equal(t, "One.\nTwo.\nThree.", OneSentencePerLine(" One. Two. Three. "))
}

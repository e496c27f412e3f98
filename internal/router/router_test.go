package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/handlers"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/middleware"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/session"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.Open(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rl := middleware.NewRateLimiter(0, 1)
	t.Cleanup(rl.Stop)

	h := handlers.NewHandler(store, tasks.NewDispatcher(tasks.Services{}), "router-secret", 1<<20)
	return Setup(h, rl, []string{"http://localhost:5173"})
}

func TestSetup_PublicRoutes(t *testing.T) {
	r := newEngine(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/tasks", "/api/docs", "/api/docs/openapi.yaml"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetup_SessionRoutesRequireToken(t *testing.T) {
	r := newEngine(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/document"},
		{http.MethodDelete, "/api/v1/document"},
		{http.MethodPost, "/api/v1/document/tasks"},
		{http.MethodGet, "/api/v1/document/speech.mp3"},
		{http.MethodGet, "/api/v1/document/wordcloud.png"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
}

func TestSetup_CORSPreflight(t *testing.T) {
	r := newEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/document/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

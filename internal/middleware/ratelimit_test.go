package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	// One token per hour: only the burst gets through.
	rl := NewRateLimiter(1.0/3600, 2)
	defer rl.Stop()
	r := newLimitedRouter(rl)

	w := hit(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1:1234").Code)

	w = hit(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.2:1234").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	defer rl.Stop()
	r := newLimitedRouter(rl)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1:1234").Code)
	}
}

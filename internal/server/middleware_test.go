package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t)
	handler := s.recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Len(t, body["error_id"], 36)
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t, func(c *config.AppConfig) { c.Server.CORSOrigin = "https://plan.example.com" })

	rec := do(t, s, http.MethodOptions, "/api/v1/calculators/mortgage", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://plan.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, "https://plan.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDMiddleware(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get("X-Correlation-ID"), 8)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Correlation-ID"))
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, func(c *config.AppConfig) {
		c.Server.RateLimit.RequestsPerSecond = 0.001
		c.Server.RateLimit.Burst = 2
	})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	}
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	other := httptest.NewRecorder()
	s.Handler().ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(1, 0)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "burst below one is raised to one")
	assert.True(t, rl.Allow("b"))
	require.Equal(t, 2, rl.size())

	rl.cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, 0, rl.size())

	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4321"
	assert.Equal(t, "192.0.2.7", clientIP(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", clientIP(req))
}

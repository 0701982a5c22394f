package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callLimited(t *testing.T, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/leads/sell", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRateLimitDisabledAllows(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{Redis: nil, RPS: 0})
	rec, called := callLimited(t, mw)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitFailsOpenAndLogsOnRedisError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Output()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	// nothing listens on port 1; the pipeline errors immediately
	rds := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rds.Close() })

	mw := RateLimitMiddleware(RateLimitConfig{Redis: rds, RPS: 1})
	rec, called := callLimited(t, mw)

	assert.True(t, called, "request must pass when redis is down")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "rate limit redis")
}

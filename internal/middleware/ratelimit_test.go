package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vitalog/measurement-service/internal/config"
)

func limiterConfig(enabled bool) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        enabled,
		Capacity:       5,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		KeyStrategy:    "user_route",
		Prefix:         "rl",
	}
}

func runLimiter(mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/resources/measurement-editor", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	_ = mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	rec, called := runLimiter(NewTokenBucket(limiterConfig(false), nil))

	assert.True(t, called, "disabled limiter must invoke the next handler")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucketWithoutRedisPassesThrough(t *testing.T) {
	rec, called := runLimiter(NewTokenBucket(limiterConfig(true), nil))

	assert.True(t, called, "limiter without redis must not block requests")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

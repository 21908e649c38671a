// Package flash implements the short-lived notification side channel that
// survives a redirect.  A toast is stored under a one-time token and the
// token travels to the next request in a cookie; the first read consumes it.
// Redis holds the payload so the cookie never carries user-visible text, but
// when Redis is unavailable the store degrades to embedding the payload in
// the cookie itself rather than dropping notifications.
package flash

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vitalog/measurement-service/pkg/logger"
)

const (
	cookieName = "toast"
	keyPrefix  = "flash:"
	ttl        = 2 * time.Minute
)

// Toast is a single notification shown after a redirect.  Variant is empty
// for neutral notifications and "destructive" for delete confirmations.
type Toast struct {
	Title   string `json:"title"`
	Variant string `json:"variant,omitempty"`
}

// Store persists toasts across a redirect.  A nil Redis client is allowed.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

// Set attaches a toast to the response so the next request can pick it up.
func (s *Store) Set(c echo.Context, t Toast) {
	body, err := json.Marshal(t)
	if err != nil {
		logger.Sugar.Errorf("flash: marshal toast: %v", err)
		return
	}

	value := ""
	if s.rdb != nil {
		token := uuid.NewString()
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		if err := s.rdb.Set(ctx, keyPrefix+token, body, ttl).Err(); err == nil {
			value = token
		} else {
			logger.Sugar.Warnf("flash: redis set failed, falling back to cookie payload: %v", err)
		}
	}
	if value == "" {
		// Degraded mode: carry the payload directly in the cookie.
		value = base64.RawURLEncoding.EncodeToString(body)
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop consumes the pending toast for this request, if any.  The cookie is
// cleared and the Redis entry deleted, so a toast is shown at most once.
func (s *Store) Pop(c echo.Context) (Toast, bool) {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return Toast{}, false
	}
	// Expire the cookie regardless of whether decoding succeeds.
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var body []byte
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		if raw, err := s.rdb.GetDel(ctx, keyPrefix+ck.Value).Bytes(); err == nil {
			body = raw
		}
	}
	if body == nil {
		raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
		if err != nil {
			return Toast{}, false
		}
		body = raw
	}

	var t Toast
	if err := json.Unmarshal(body, &t); err != nil {
		return Toast{}, false
	}
	return t, true
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/measurement-service/internal/utils"
)

const testSecret = "test-secret"

func runMiddleware(mw echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	_ = mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return c, rec, called
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "kody", 5)
	require.NoError(t, err)

	c, _, called := runMiddleware(JWTAuth(testSecret), "Bearer "+tok.Token)

	assert.True(t, called)
	assert.Equal(t, float64(7), c.Get("user_id"), "JWT numeric claims decode as float64")
	assert.Equal(t, "kody", c.Get("username"))
}

func TestJWTAuthMissingToken(t *testing.T) {
	_, rec, called := runMiddleware(JWTAuth(testSecret), "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "kody", 5)
	require.NoError(t, err)

	_, rec, called := runMiddleware(JWTAuth(testSecret), "Bearer "+tok.Token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuthAnonymous(t *testing.T) {
	c, rec, called := runMiddleware(OptionalJWTAuth(testSecret), "")

	assert.True(t, called, "optional auth must let anonymous requests through")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestOptionalJWTAuthWithToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "kody", 5)
	require.NoError(t, err)

	c, _, called := runMiddleware(OptionalJWTAuth(testSecret), "Bearer "+tok.Token)

	assert.True(t, called)
	assert.Equal(t, float64(7), c.Get("user_id"))
}

func TestOptionalJWTAuthBadTokenTreatedAsGuest(t *testing.T) {
	c, rec, called := runMiddleware(OptionalJWTAuth(testSecret), "Bearer garbage")

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

package middleware // reusable HTTP middleware for the measurement service

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject and username claims into the request context.
// The provided secret must match the one used when issuing tokens.  Handlers
// behind this middleware read the caller via `c.Get("user_id")` and
// `c.Get("username")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := bearerClaims(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing bearer token"})
			}
			c.Set("user_id", claims["sub"])
			c.Set("username", claims["username"])
			return next(c)
		}
	}
}

// OptionalJWTAuth is like JWTAuth but never rejects the request.  When a
// valid token is present the caller identity is injected; otherwise the
// request continues anonymously.  Used on public read routes where the
// response differs for the owner (e.g. the isOwner flag on the detail view).
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := bearerClaims(c, secret); ok {
				c.Set("user_id", claims["sub"])
				c.Set("username", claims["username"])
			}
			return next(c)
		}
	}
}

// bearerClaims extracts and verifies the Authorization header.  It returns
// the token claims and whether a valid HS256 token was present.
func bearerClaims(c echo.Context, secret string) (jwt.MapClaims, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

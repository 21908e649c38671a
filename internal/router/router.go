// Package router defines how HTTP routes are registered for the service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vitalog/measurement-service/internal/config"
	"github.com/vitalog/measurement-service/internal/handler"
	"github.com/vitalog/measurement-service/internal/middleware"
)

// Register wires every route of the service onto the provided Echo instance.
//
// Route surface:
//
//	GET  /healthz                                       liveness probe
//	POST /v1/auth/{register,login,refresh,logout}       session management
//	GET  /v1/me                                         caller identity (auth)
//	POST /resources/measurement-editor                  create-or-update (auth)
//	GET  /users/:username/measurements                  public list
//	GET  /users/:username/measurements/new              editor page (auth)
//	GET  /users/:username/measurements/:measurementId   public detail
//	POST /users/:username/measurements/:measurementId   delete action (auth)
//	GET  /users/:username/measurements/:measurementId/edit  editor page (auth+owner)
func Register(e *echo.Echo, a *handler.AuthHandler, m *handler.MeasurementHandler, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Session endpoints live under /v1/auth and need no existing session.
	auth := e.Group("/v1/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout)

	requireAuth := middleware.JWTAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalJWTAuth(cfg.JWTSecret)
	// The limiter keys per user, so it runs after authentication.
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.GET("/v1/me", a.Me, requireAuth)

	// The editor resource endpoint is shared by the new and edit flows;
	// mutations are rate limited per user.
	e.POST("/resources/measurement-editor", m.EditorAction, requireAuth, limit)

	// Reads are public; the optional middleware injects the caller identity
	// when a valid token is present so the handlers can compute isOwner.
	e.GET("/users/:username/measurements", m.List, optionalAuth)
	e.GET("/users/:username/measurements/new", m.NewPage, requireAuth)
	e.GET("/users/:username/measurements/:measurementId", m.Detail, optionalAuth)
	e.POST("/users/:username/measurements/:measurementId", m.Delete, requireAuth, limit)
	e.GET("/users/:username/measurements/:measurementId/edit", m.EditPage, requireAuth)
}

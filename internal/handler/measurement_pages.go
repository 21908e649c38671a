// This file implements the thin wrapper routes around the editor — the
// "new" and "edit" pages — and the per-user measurement list.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitalog/measurement-service/internal/repository"
)

// NewPage handles GET /users/:username/measurements/new.  Authentication is
// enforced by the JWT middleware; the page itself has no data to load, the
// client renders an empty editor posting to the resource endpoint.
func (h *MeasurementHandler) NewPage(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"measurement": nil})
}

// EditPage handles GET /users/:username/measurements/:measurementId/edit.
// The measurement must exist AND belong to the caller; anything else is a
// 404.  The response includes the id so a subsequent editor submission takes
// the update branch.
func (h *MeasurementHandler) EditPage(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Measurements.GetByIDAndOwner(ctx, c.Param("measurementId"), userID)
	if err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "measurement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"measurement": viewOf(m)})
}

// List handles GET /users/:username/measurements.  The list is public, like
// the detail view, and is the redirect target after a deletion, so it also
// drains any pending flash notification.
func (h *MeasurementHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items, err := h.Measurements.ListByOwner(ctx, owner.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	views := make([]measurementView, 0, len(items))
	for _, m := range items {
		views = append(views, viewOf(m))
	}

	callerID, _ := getUserID(c)
	resp := echo.Map{
		"owner":   owner.Username,
		"items":   views,
		"isOwner": callerID != 0 && callerID == owner.ID,
	}
	if toast, ok := h.Flash.Pop(c); ok {
		resp["toast"] = toast
	}
	return c.JSON(http.StatusOK, resp)
}

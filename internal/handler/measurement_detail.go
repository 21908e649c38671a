// This file implements the measurement detail view and the colocated delete
// action.  Reads are public; deletion requires the caller to own the record.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitalog/measurement-service/internal/flash"
	"github.com/vitalog/measurement-service/internal/form"
	"github.com/vitalog/measurement-service/internal/queue"
	"github.com/vitalog/measurement-service/internal/repository"
	"github.com/vitalog/measurement-service/internal/utils"
)

// Detail handles GET /users/:username/measurements/:measurementId.  The
// lookup is by id alone — anyone may read a measurement.  isOwner only gates
// whether the client shows edit/delete controls; the actions re-check
// ownership themselves.
func (h *MeasurementHandler) Detail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Measurements.GetByID(ctx, c.Param("measurementId"))
	if err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "measurement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	callerID, _ := getUserID(c) // zero when unauthenticated
	now := time.Now().UTC()
	resp := echo.Map{
		"measurement": viewOf(m),
		"timeAgo":     utils.TimeAgo(m.UpdatedAt, now),
		"dateDisplay": utils.FormatDateTime(m.UpdatedAt),
		"isOwner":     callerID != 0 && callerID == m.OwnerID,
	}
	if toast, ok := h.Flash.Pop(c); ok {
		resp["toast"] = toast
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles POST /users/:username/measurements/:measurementId carrying
// an explicit delete intent.  A missing record and a record owned by someone
// else produce the same 404 with a field error, so the endpoint leaks
// nothing about other users' measurements.  Deletion is permanent.
func (h *MeasurementHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}

	sub, in := form.ParseDelete(values)
	if in == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "submission": sub})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Measurements.GetByIDAndOwner(ctx, in.MeasurementID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			sub.AddError("measurementId", "Measurement not found")
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "submission": sub})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Measurements.DeleteByIDAndOwner(ctx, m.ID, userID); err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			sub.AddError("measurementId", "Measurement not found")
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "submission": sub})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.Flash.Set(c, flash.Toast{Title: "Measurement deleted", Variant: "destructive"})

	ev := queue.MeasurementEvent{
		Action:        queue.ActionDeleted,
		MeasurementID: m.ID,
		OwnerID:       userID,
		OwnerUsername: m.OwnerUsername,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue.PublishMeasurementEvent(context.Background(), ev) }()

	return c.Redirect(http.StatusSeeOther,
		fmt.Sprintf("/users/%s/measurements", m.OwnerUsername))
}

// This file implements the shared editor resource endpoint.  Create and
// update submissions post to the same route; the presence of an id field in
// the form is the sole discriminator between the two branches.
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
)

// EditorAction handles POST /resources/measurement-editor.
//
// The flow mirrors the form lifecycle: a submission whose intent is not
// "submit" is a client-side revalidation ping and is answered with the
// parsed result and no side effects; a failed parse returns field-scoped
// errors with a 400.  Valid submissions either update an existing
// measurement (when the caller owns it — a miss is reported as 404 so other
// users' ids are not distinguishable from nonexistent ones) or create a new
// one owned by the caller.  Success redirects to the detail page with a
// flash notification.
func (h *MeasurementHandler) EditorAction(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form body"})
	}

	sub := form.ParseMeasurement(values)
	if sub.Intent != form.IntentSubmit {
		return c.JSON(http.StatusOK, echo.Map{"status": "idle", "submission": sub})
	}
	if !sub.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "submission": sub})
	}
	in := sub.Value

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		measurementID string
		title         string
	)
	if in.IsUpdate() {
		// The id+owner scoped lookup is both the existence and the
		// authorization check.
		if _, err := h.Measurements.GetByIDAndOwner(ctx, in.ID, userID); err != nil {
			if errors.Is(err, repository.ErrMeasurementNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "submission": sub})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if err := h.Measurements.Update(ctx, in.ID, userID,
			in.Description, in.Sys, in.Dia, in.Pulse, in.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		measurementID = in.ID
		title = "Measurement updated"
	} else {
		m := &repository.Measurement{
			OwnerID:     userID,
			Description: in.Description,
			Sys:         in.Sys,
			Dia:         in.Dia,
			Pulse:       in.Pulse,
			CreatedAt:   in.CreatedAt,
		}
		if err := h.Measurements.Create(ctx, m); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
		measurementID = m.ID
		title = "Measurement created"
	}

	username := h.callerUsername(c, userID)
	if username == "" {
		// The redirect target embeds the owner's handle; without it the
		// location would be malformed.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve caller failed"})
	}
	h.Flash.Set(c, flash.Toast{Title: title})

	ev := queue.MeasurementEvent{
		Action:        queue.ActionRecorded,
		MeasurementID: measurementID,
		OwnerID:       userID,
		OwnerUsername: username,
		Sys:           in.Sys,
		Dia:           in.Dia,
		Pulse:         in.Pulse,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort; a broker outage must not fail the submission.
	go func() { _ = queue.PublishMeasurementEvent(context.Background(), ev) }()

	return c.Redirect(http.StatusSeeOther,
		fmt.Sprintf("/users/%s/measurements/%s", username, measurementID))
}

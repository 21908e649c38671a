package handler // handler defines HTTP handlers for the measurement service

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitalog/measurement-service/internal/flash"
	"github.com/vitalog/measurement-service/internal/repository"
)

// MeasurementHandler bundles the dependencies of all measurement routes:
// the measurement and user repositories plus the flash store used to carry
// notifications across redirects.
type MeasurementHandler struct {
	Measurements *repository.MeasurementRepo
	Users        *repository.UserRepo
	Flash        *flash.Store
}

// NewMeasurementHandler constructs a MeasurementHandler and panics if any
// dependency is nil.
func NewMeasurementHandler(measurements *repository.MeasurementRepo, users *repository.UserRepo, fl *flash.Store) *MeasurementHandler {
	if measurements == nil || users == nil || fl == nil {
		panic("nil dependency passed to NewMeasurementHandler")
	}
	return &MeasurementHandler{Measurements: measurements, Users: users, Flash: fl}
}

// measurementView is the JSON shape of a measurement in responses.
type measurementView struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Description string    `json:"description,omitempty"`
	Sys         string    `json:"sys"`
	Dia         string    `json:"dia"`
	Pulse       string    `json:"pulse"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func viewOf(m *repository.Measurement) measurementView {
	return measurementView{
		ID:          m.ID,
		Owner:       m.OwnerUsername,
		Description: m.Description,
		Sys:         m.Sys,
		Dia:         m.Dia,
		Pulse:       m.Pulse,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// getUserID extracts the user_id claim from echo.Context and converts it to
// uint64.  JWT numeric claims arrive as float64; other encodings are handled
// for robustness.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getUsername extracts the username claim placed in context by the JWT
// middleware.  Empty when the request is unauthenticated.
func getUsername(c echo.Context) string {
	if s, ok := c.Get("username").(string); ok {
		return s
	}
	return ""
}

// callerUsername returns the username for redirect URLs, falling back to a
// database lookup when the token predates the username claim.
func (h *MeasurementHandler) callerUsername(c echo.Context, userID uint64) string {
	if s := getUsername(c); s != "" {
		return s
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return ""
	}
	return u.Username
}

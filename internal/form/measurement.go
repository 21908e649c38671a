// Package form parses and validates measurement form submissions.  A parsed
// submission carries either a normalized value or field-scoped errors, plus
// the raw payload so clients can re-render the form with what was typed.
package form

import (
	"net/url"
	"strings"
	"time"
)

// IntentSubmit is the default intent of a form post.  Clients performing
// field revalidation send a different intent and expect no side effects.
const IntentSubmit = "submit"

// IntentDelete is the intent marker a delete form must carry.
const IntentDelete = "delete-measurement"

// acceptable layouts for the createdAt field, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// MeasurementInput is the normalized result of a successful parse.  ID is
// empty on create submissions and set on update submissions; its presence is
// the sole discriminator between the two branches of the editor action.
type MeasurementInput struct {
	ID          string
	Description string
	Sys         string
	Dia         string
	Pulse       string
	CreatedAt   time.Time
}

// IsUpdate reports which branch of the editor action this input selects.
// The discriminator is the presence of the id; keeping the decision here
// means handlers and tests share a single definition of the branch.
func (in *MeasurementInput) IsUpdate() bool { return in.ID != "" }

// DeleteInput is the normalized result of parsing a delete form.
type DeleteInput struct {
	MeasurementID string
}

// Submission is the outcome of parsing a form post.  Intent records what the
// caller asked for, Payload echoes the raw fields, and Error maps field
// names to validation messages.  Error is always non-nil so a clean parse
// serializes as an empty object rather than null.  Value is nil unless
// parsing succeeded.
type Submission struct {
	Intent  string              `json:"intent"`
	Payload map[string]string   `json:"payload"`
	Error   map[string][]string `json:"error"`
	Value   *MeasurementInput   `json:"-"`
}

// OK reports whether the submission parsed cleanly into a value.
func (s *Submission) OK() bool {
	return len(s.Error) == 0 && s.Value != nil
}

// AddError appends a message to a field's error list.
func (s *Submission) AddError(field, msg string) {
	if s.Error == nil {
		s.Error = map[string][]string{}
	}
	s.Error[field] = append(s.Error[field], msg)
}

func payloadFrom(values url.Values, fields ...string) map[string]string {
	p := make(map[string]string, len(fields))
	for _, f := range fields {
		if v := values.Get(f); v != "" {
			p[f] = v
		}
	}
	return p
}

func intentFrom(values url.Values) string {
	intent := strings.TrimSpace(values.Get("intent"))
	if intent == "" {
		intent = IntentSubmit
	}
	return intent
}

// ParseMeasurement validates an editor submission.  sys, dia and pulse are
// required but validated only as non-empty text; no numeric range checks are
// applied.  createdAt must parse with one of the accepted layouts.
func ParseMeasurement(values url.Values) *Submission {
	sub := &Submission{
		Intent:  intentFrom(values),
		Payload: payloadFrom(values, "id", "description", "createdAt", "sys", "dia", "pulse"),
		Error:   map[string][]string{},
	}

	in := MeasurementInput{
		ID:          strings.TrimSpace(values.Get("id")),
		Description: strings.TrimSpace(values.Get("description")),
		Sys:         strings.TrimSpace(values.Get("sys")),
		Dia:         strings.TrimSpace(values.Get("dia")),
		Pulse:       strings.TrimSpace(values.Get("pulse")),
	}

	for field, v := range map[string]string{"sys": in.Sys, "dia": in.Dia, "pulse": in.Pulse} {
		if v == "" {
			sub.AddError(field, "Required")
		}
	}

	rawDate := strings.TrimSpace(values.Get("createdAt"))
	if rawDate == "" {
		sub.AddError("createdAt", "Required")
	} else {
		parsed, ok := parseDate(rawDate)
		if !ok {
			sub.AddError("createdAt", "Invalid date")
		}
		in.CreatedAt = parsed
	}

	if len(sub.Error) == 0 {
		sub.Value = &in
	}
	return sub
}

// ParseDelete validates a delete submission: the intent literal must match
// and the measurement id must be present.
func ParseDelete(values url.Values) (*Submission, *DeleteInput) {
	sub := &Submission{
		Intent:  intentFrom(values),
		Payload: payloadFrom(values, "intent", "measurementId"),
		Error:   map[string][]string{},
	}
	if sub.Intent != IntentDelete {
		sub.AddError("intent", "Unexpected intent")
	}
	id := strings.TrimSpace(values.Get("measurementId"))
	if id == "" {
		sub.AddError("measurementId", "Required")
	}
	if len(sub.Error) != 0 {
		return sub, nil
	}
	return sub, &DeleteInput{MeasurementID: id}
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

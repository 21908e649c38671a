// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Measurement event actions.
const (
	ActionRecorded = "recorded"
	ActionDeleted  = "deleted"
)

// MeasurementEvent is published after a measurement is created, updated or
// deleted.  It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type MeasurementEvent struct {
	Action        string `json:"action"` // recorded | deleted
	MeasurementID string `json:"measurement_id"`
	OwnerID       uint64 `json:"owner_id"`
	OwnerUsername string `json:"owner_username"`
	Sys           string `json:"sys,omitempty"`
	Dia           string `json:"dia,omitempty"`
	Pulse         string `json:"pulse,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

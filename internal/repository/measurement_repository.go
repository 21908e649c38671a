// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Measurement model and repository methods for CRUD and
// lookup operations.  A Measurement is a single blood-pressure reading owned
// by exactly one user.  The systolic/diastolic/pulse readings are carried as
// text end to end; the service does not interpret them numerically.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Measurement represents a blood-pressure reading persisted in the database.
// ID is a server-generated UUID and is immutable after creation.  OwnerID is
// set from the authenticated caller at creation and never changed.  CreatedAt
// is the reading's effective timestamp supplied by the caller; UpdatedAt is
// maintained by the database on every mutation.
type Measurement struct {
	ID            string
	OwnerID       uint64
	OwnerUsername string // joined from users; not a column of measurements
	Description   string
	Sys           string
	Dia           string
	Pulse         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MeasurementRepo encapsulates all database queries related to measurements.
type MeasurementRepo struct {
	db *sql.DB
}

// NewMeasurementRepo constructs a MeasurementRepo with the provided DB
// handle.  This allows dependency injection of the database in tests and at
// startup.
func NewMeasurementRepo(db *sql.DB) *MeasurementRepo {
	return &MeasurementRepo{db: db}
}

const measurementColumns = `m.id, m.owner_id, u.username, m.description, m.sys, m.dia, m.pulse, m.created_at, m.updated_at`

func scanMeasurement(row *sql.Row) (*Measurement, error) {
	var m Measurement
	err := row.Scan(&m.ID, &m.OwnerID, &m.OwnerUsername, &m.Description,
		&m.Sys, &m.Dia, &m.Pulse, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMeasurementNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new measurement, assigning it a fresh UUID.  On success
// the ID and UpdatedAt fields are populated; a follow-up SELECT fetches the
// database-assigned updated_at so callers receive a fully populated record.
func (r *MeasurementRepo) Create(ctx context.Context, m *Measurement) error {
	m.ID = uuid.NewString()
	const qInsert = `INSERT INTO measurements (id, owner_id, description, sys, dia, pulse, created_at)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, qInsert,
		m.ID, m.OwnerID, m.Description, m.Sys, m.Dia, m.Pulse, m.CreatedAt); err != nil {
		return err
	}
	const qSelect = `SELECT updated_at FROM measurements WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.UpdatedAt)
}

// GetByID fetches a measurement by its ID regardless of owner.  The detail
// view is public, so no ownership filter is applied here.  Returns
// ErrMeasurementNotFound if no row is found.
func (r *MeasurementRepo) GetByID(ctx context.Context, id string) (*Measurement, error) {
	const q = `SELECT ` + measurementColumns + `
	           FROM measurements m JOIN users u ON u.id = m.owner_id
	           WHERE m.id = ?`
	return scanMeasurement(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDAndOwner fetches a measurement by id but only if it belongs to the
// specified owner.  The single id+owner filter doubles as existence and
// authorization check, so a nonexistent id and someone else's id are
// indistinguishable to the caller.
func (r *MeasurementRepo) GetByIDAndOwner(ctx context.Context, id string, ownerID uint64) (*Measurement, error) {
	const q = `SELECT ` + measurementColumns + `
	           FROM measurements m JOIN users u ON u.id = m.owner_id
	           WHERE m.id = ? AND m.owner_id = ?`
	return scanMeasurement(r.db.QueryRowContext(ctx, q, id, ownerID))
}

// ListByOwner returns all measurements for an owner, newest reading first.
func (r *MeasurementRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*Measurement, error) {
	const q = `SELECT ` + measurementColumns + `
	           FROM measurements m JOIN users u ON u.id = m.owner_id
	           WHERE m.owner_id = ? ORDER BY m.created_at DESC, m.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Measurement
	for rows.Next() {
		m := new(Measurement)
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.OwnerUsername, &m.Description,
			&m.Sys, &m.Dia, &m.Pulse, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a measurement owned by ownerID.  The
// id and owner_id columns are never touched; updated_at is bumped by the
// database.  Callers are expected to have verified ownership with
// GetByIDAndOwner first; the owner filter here is kept so a racing delete
// can never resurrect another user's row.  RowsAffected is deliberately not
// inspected: the MySQL driver reports rows changed, so an idempotent
// resubmission of identical values would otherwise look like a miss.
func (r *MeasurementRepo) Update(ctx context.Context, id string, ownerID uint64, description, sys, dia, pulse string, createdAt time.Time) error {
	const q = `UPDATE measurements
	           SET description = ?, sys = ?, dia = ?, pulse = ?, created_at = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	_, err := r.db.ExecContext(ctx, q, description, sys, dia, pulse, createdAt, id, ownerID)
	return err
}

// DeleteByIDAndOwner removes a measurement provided it belongs to the given
// owner.  Deletion is immediate and permanent; there is no soft delete.
// Returns ErrMeasurementNotFound when no row is affected.
func (r *MeasurementRepo) DeleteByIDAndOwner(ctx context.Context, id string, ownerID uint64) error {
	const q = `DELETE FROM measurements WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}

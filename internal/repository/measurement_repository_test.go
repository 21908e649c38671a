package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var measurementCols = []string{"id", "owner_id", "username", "description", "sys", "dia", "pulse", "created_at", "updated_at"}

func measurementRow(id string, ownerID uint64, username string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(measurementCols).
		AddRow(id, ownerID, username, "morning", "120", "80", "70", now, now)
}

func TestMeasurementCreateAssignsUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO measurements").
		WithArgs(sqlmock.AnyArg(), uint64(7), "morning", "120", "80", "70", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT updated_at FROM measurements").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now().UTC()))

	repo := NewMeasurementRepo(db)
	m := &Measurement{
		OwnerID:     7,
		Description: "morning",
		Sys:         "120",
		Dia:         "80",
		Pulse:       "70",
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), m))

	assert.NotEmpty(t, m.ID, "create must assign a server-generated id")
	assert.False(t, m.UpdatedAt.IsZero(), "create must populate updated_at")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementGetByIDAndOwnerMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM measurements m JOIN users u").
		WithArgs("m-1", uint64(99)).
		WillReturnRows(sqlmock.NewRows(measurementCols))

	repo := NewMeasurementRepo(db)
	_, err = repo.GetByIDAndOwner(context.Background(), "m-1", 99)

	assert.ErrorIs(t, err, ErrMeasurementNotFound,
		"a row owned by someone else must be indistinguishable from a missing row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM measurements m JOIN users u").
		WithArgs("m-1").
		WillReturnRows(measurementRow("m-1", 7, "kody"))

	repo := NewMeasurementRepo(db)
	m, err := repo.GetByID(context.Background(), "m-1")

	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)
	assert.Equal(t, uint64(7), m.OwnerID)
	assert.Equal(t, "kody", m.OwnerUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementDeleteByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM measurements").
		WithArgs("m-1", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMeasurementRepo(db)
	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), "m-1", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementDeleteMissReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM measurements").
		WithArgs("m-1", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMeasurementRepo(db)
	err = repo.DeleteByIDAndOwner(context.Background(), "m-1", 99)

	assert.ErrorIs(t, err, ErrMeasurementNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(measurementCols).
		AddRow("m-2", uint64(7), "kody", "", "118", "78", "68", now, now).
		AddRow("m-1", uint64(7), "kody", "morning", "120", "80", "70", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery("FROM measurements m JOIN users u").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	repo := NewMeasurementRepo(db)
	items, err := repo.ListByOwner(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "m-2", items[0].ID)
	assert.Equal(t, "m-1", items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

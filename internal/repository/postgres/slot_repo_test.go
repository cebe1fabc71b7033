package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"volunteerhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slotCols = []string{"id", "position_id", "start_time", "end_time", "capacity", "volunteers_checked_in", "created_at"}

func TestSlotRepository_ListByPositionID(t *testing.T) {
	nine := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ten := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	eleven := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM slots\s+WHERE position_id = \$1\s+ORDER BY start_time ASC`).
		WithArgs("pos-1").
		WillReturnRows(sqlmock.NewRows(slotCols).
			AddRow("slot-1", "pos-1", nine, ten, 2, 1, nine).
			AddRow("slot-2", "pos-1", ten, eleven, 1, 0, nine))
	mock.ExpectQuery(`SELECT sv.slot_id, u.id, u.email, u.created_at, sv.checked_in`).
		WithArgs("pos-1").
		WillReturnRows(sqlmock.NewRows([]string{"slot_id", "id", "email", "created_at", "checked_in"}).
			AddRow("slot-1", "u-1", "alice@example.com", nine, true).
			AddRow("slot-1", "u-2", "bob@example.com", nine, false))

	got, err := NewSlotRepository(db).ListByPositionID(context.Background(), "pos-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Len(t, got[0].Volunteers, 2)
	assert.True(t, got[0].Volunteers[0].CheckedIn)
	assert.Equal(t, "bob@example.com", got[0].Volunteers[1].User.Email)
	assert.Equal(t, domain.StateCheckedIn, got[0].State("u-1"))
	assert.Empty(t, got[1].Volunteers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_ListByPositionID_VolunteerQueryError(t *testing.T) {
	nine := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM slots`).WithArgs("pos-1").
		WillReturnRows(sqlmock.NewRows(slotCols).AddRow("slot-1", "pos-1", nine, nine.Add(time.Hour), 2, 0, nine))
	mock.ExpectQuery(`FROM slot_volunteers`).WithArgs("pos-1").WillReturnError(sql.ErrConnDone)

	got, err := NewSlotRepository(db).ListByPositionID(context.Background(), "pos-1")
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.Nil(t, got)
}

func TestSlotRepository_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	nine := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO slots \(position_id, start_time, end_time, capacity, volunteers_checked_in, created_at\)`).
		WithArgs("pos-1", nine, noon, 3, nine).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("slot-1"))
	mock.ExpectExec(`UPDATE slots SET capacity = \$1 WHERE id = \$2`).
		WithArgs(4, "slot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM slots WHERE id = \$1`).
		WithArgs("slot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSlotRepository(db)
	slot := &domain.Slot{PositionID: "pos-1", StartTime: nine, EndTime: noon, Capacity: 3, CreatedAt: nine}
	require.NoError(t, repo.Create(ctx, slot))
	require.Equal(t, "slot-1", slot.ID)

	capacity := 4
	require.NoError(t, repo.Update(ctx, "slot-1", domain.SlotPatch{Capacity: &capacity}))
	require.NoError(t, repo.Delete(ctx, "slot-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_GetByID(t *testing.T) {
	nine := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM slots\s+WHERE id = \$1`).WithArgs("slot-1").
		WillReturnRows(sqlmock.NewRows(slotCols).AddRow("slot-1", "pos-1", nine, nine.Add(time.Hour), 2, 0, nine))
	mock.ExpectQuery(`FROM slots\s+WHERE id = \$1`).WithArgs("slot-2").WillReturnError(sql.ErrNoRows)

	repo := NewSlotRepository(db)
	got, err := repo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Slot{ID: "slot-1", PositionID: "pos-1", StartTime: nine, EndTime: nine.Add(time.Hour), Capacity: 2, CreatedAt: nine}, got)

	_, err = repo.GetByID(context.Background(), "slot-2")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var bookingDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), db, mock
}

func newBooking() *domain.Booking {
	return &domain.Booking{
		Reference:     "2b1f7c8e-4c55-4a5e-9f0a-1c9d1c1f0a11",
		Flow:          "corporate",
		BookingDate:   bookingDate,
		StartTime:     types.MustTimeString("13:30"),
		EndTime:       types.MustTimeString("15:00"),
		SlotLabel:     "1:30 PM - 3:00 PM",
		Status:        domain.StatusPending,
		CustomerName:  "Acme Ltd",
		CustomerEmail: "events@acme.test",
		Guests:        12,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO bookings .+ RETURNING id, created_at, updated_at").
		WithArgs(
			"2b1f7c8e-4c55-4a5e-9f0a-1c9d1c1f0a11", "corporate", bookingDate, "13:30", "15:00",
			"1:30 PM - 3:00 PM", "pending", "Acme Ltd", "events@acme.test", 12, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	created, err := repo.Create(context.Background(), newBooking())
	require.NoError(t, err)

	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uidx"})

	_, err := repo.Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeepsDriverError(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Now()
	notes := "projector"

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(
			7, "ref", "kids", bookingDate, "10:00:00", "12:30:00", "10:00 AM - 12:30 PM",
			"confirmed", "Jane", "jane@example.test", 8, notes, nil, nil, now, now,
		))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, types.TimeString("10:00"), b.StartTime)
	assert.Equal(t, types.TimeString("12:30"), b.EndTime)
	require.NotNil(t, b.Notes)
	assert.Equal(t, notes, *b.Notes)
	assert.Nil(t, b.CancelledAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("SELECT .+ FROM bookings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListByDate(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = \\$1 AND status IN \\(\\$2,\\$3\\) ORDER BY start_time ASC, id ASC").
		WithArgs(bookingDate, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(1, "r1", "corporate", bookingDate, "10:00", "12:30", "", "pending", "A", "a@test", 2, nil, nil, nil, now, now).
			AddRow(2, "r2", "corporate", bookingDate, "13:30", "15:00", "", "confirmed", "B", "b@test", 3, nil, nil, nil, now, now))

	bookings, err := repo.ListByDate(context.Background(), bookingDate, false)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate_IncludeCancelled(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date = \\$1 ORDER BY").
		WithArgs(bookingDate).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.ListByDate(context.Background(), bookingDate, true)
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IntervalsForDate(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("SELECT booking_date, start_time, end_time, status FROM bookings WHERE booking_date = \\$1 AND status IN \\(\\$2,\\$3\\) ORDER BY start_time ASC$").
		WithArgs(bookingDate, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"booking_date", "start_time", "end_time", "status"}).
			AddRow(bookingDate, "10:00:00", "12:30:00", "pending").
			AddRow(bookingDate, "13:30:00", "15:00:00", "confirmed"))

	intervals, err := repo.IntervalsForDate(context.Background(), bookingDate)
	require.NoError(t, err)

	assert.Equal(t, []domain.BookedInterval{
		{Date: bookingDate, Start: "10:00", End: "12:30", Status: domain.IntervalPending},
		{Date: bookingDate, Start: "13:30", End: "15:00", Status: domain.IntervalConfirmed},
	}, intervals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockIntervalsForDate_InTransaction(t *testing.T) {
	repo, db, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM bookings .+ ORDER BY start_time ASC FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"booking_date", "start_time", "end_time", "status"}))
	mock.ExpectRollback()

	tx, err := dbmetrics.New(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	intervals, err := repo.LockIntervalsForDate(ctx, bookingDate)
	require.NoError(t, err)
	assert.Empty(t, intervals)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
		WithArgs("confirmed", int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed))

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, cancellation_reason = \\$2, cancelled_at = NOW\\(\\), updated_at = NOW\\(\\) WHERE id = \\$3 AND status IN \\(\\$4,\\$5\\)").
		WithArgs("cancelled", "client request", int64(7), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 7, "client request"))

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Cancel(context.Background(), 7, "again"), ErrCannotCancel)
}

package block

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var blockDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO manual_blocks \\(block_date,start_time,end_time,reason\\) VALUES \\(\\$1,\\$2,\\$3,\\$4\\) RETURNING id, created_at").
		WithArgs(blockDate, "11:00", "11:45", "deep clean").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	block, err := repo.Create(context.Background(), &domain.ManualBlock{
		BlockDate: blockDate,
		StartTime: types.MustTimeString("11:00"),
		EndTime:   types.MustTimeString("11:45"),
		Reason:    "deep clean",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), block.ID)
	assert.Equal(t, now, block.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IntervalsForDate(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, block_date, start_time, end_time, reason, created_at FROM manual_blocks WHERE block_date = \\$1 ORDER BY start_time ASC, id ASC").
		WithArgs(blockDate).
		WillReturnRows(sqlmock.NewRows(blockColumns).
			AddRow(1, blockDate, "11:00:00", "11:45:00", "deep clean", now).
			AddRow(2, blockDate, "19:00:00", "23:00:00", "private event", now))

	intervals, err := repo.IntervalsForDate(context.Background(), blockDate)
	require.NoError(t, err)

	assert.Equal(t, []domain.BookedInterval{
		{Date: blockDate, Start: "11:00", End: "11:45", Status: domain.IntervalBlocked},
		{Date: blockDate, Start: "19:00", End: "23:00", Status: domain.IntervalBlocked},
	}, intervals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery("SELECT .+ FROM manual_blocks WHERE id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(blockColumns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec("DELETE FROM manual_blocks WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec("DELETE FROM manual_blocks").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrBlockNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

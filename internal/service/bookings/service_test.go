package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

var date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	bookings    map[int64]*domain.Booking
	updateErr   error
	cancelErr   error
	cancelled   []int64
	confirmed   []int64
	listErr     error
	lastInclude bool
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) ListByDate(_ context.Context, _ time.Time, includeCancelled bool) ([]*domain.Booking, error) {
	r.lastInclude = includeCancelled
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if includeCancelled || b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, _, _ domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.confirmed = append(r.confirmed, id)
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, _ string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.cancelled = append(r.cancelled, id)
	return nil
}

type fakeCache struct {
	dates []time.Time
	err   error
}

func (c *fakeCache) Invalidate(_ context.Context, d time.Time) error {
	c.dates = append(c.dates, d)
	return c.err
}

func newService() (*Service, *fakeRepo, *fakeCache) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, BookingDate: date, StartTime: "10:00", EndTime: "12:30", Status: domain.StatusPending},
		2: {ID: 2, BookingDate: date, StartTime: "13:30", EndTime: "15:00", Status: domain.StatusConfirmed},
		3: {ID: 3, BookingDate: date, StartTime: "16:00", EndTime: "17:30", Status: domain.StatusCancelled},
	}}
	cache := &fakeCache{}
	return NewService(repo, cache, logger.NewNop()), repo, cache
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-10-15", resp.BookingDate)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListByDate(t *testing.T) {
	svc, repo, _ := newService()

	resp, err := svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.False(t, repo.lastInclude)

	resp, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: date, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	_, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("db down")
	_, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{Date: date})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Confirm(t *testing.T) {
	svc, repo, cache := newService()

	resp, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []int64{1}, repo.confirmed)
	assert.Equal(t, []time.Time{date}, cache.dates)

	_, err = svc.Confirm(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCannotConfirm)

	repo.updateErr = bookingRepo.ErrInvalidStatus
	_, err = svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestService_Cancel(t *testing.T) {
	svc, repo, cache := newService()

	require.NoError(t, svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{CancellationReason: "client request"}))
	assert.Equal(t, []int64{2}, repo.cancelled)
	assert.Equal(t, []time.Time{date}, cache.dates)

	assert.ErrorIs(t, svc.Cancel(context.Background(), 3, nil), ErrCannotCancel)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 99, nil), ErrBookingNotFound)

	repo.cancelErr = bookingRepo.ErrCannotCancel
	assert.ErrorIs(t, svc.Cancel(context.Background(), 1, nil), ErrCannotCancel)
}

func TestService_Cancel_CacheFailureIsNotFatal(t *testing.T) {
	svc, _, cache := newService()
	cache.err = errors.New("redis down")

	assert.NoError(t, svc.Cancel(context.Background(), 1, nil))
}

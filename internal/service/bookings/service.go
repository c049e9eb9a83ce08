package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями (back-office)
type Service struct {
	bookingRepo BookingRepository
	cache       CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByDate получает бронирования за дату
// Отменённые возвращаются только при IncludeCancelled
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := req.Date.Format(domain.DateFormat)
	s.logger.Info("ListByDate: fetching bookings for date=%s, includeCancelled=%t", dateStr, req.IncludeCancelled)

	bookings, err := s.bookingRepo.ListByDate(ctx, req.Date, req.IncludeCancelled)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d bookings for date=%s", len(bookings), dateStr)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm переводит бронирование из pending в confirmed (например, после оплаты)
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	booking, err := s.getBooking(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", id, booking.Status)
		return nil, ErrCannotConfirm
	}

	err = s.bookingRepo.UpdateStatus(ctx, id, domain.StatusPending, domain.StatusConfirmed)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidStatus) {
			s.logger.Warn("Confirm: booking id=%d changed status concurrently", id)
			return nil, ErrCannotConfirm
		}
		s.logger.Error("Confirm: failed to update booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	// Статус интервала в кэше меняется с pending на confirmed
	s.invalidate(ctx, "Confirm", booking)

	booking.Status = domain.StatusConfirmed
	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет активное бронирование и освобождает слот
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	reason := ""
	if req != nil {
		reason = strings.TrimSpace(req.CancellationReason)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d was cancelled concurrently", id)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Cancel", booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

func (s *Service) invalidate(ctx context.Context, op string, booking *domain.Booking) {
	if err := s.cache.Invalidate(ctx, booking.BookingDate); err != nil {
		s.logger.Warn("%s: failed to invalidate cache for date=%s: %v",
			op, booking.BookingDate.Format(domain.DateFormat), err)
	}
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const (
	// maxTxAttempts попытки SERIALIZABLE транзакции при SQLSTATE 40001
	maxTxAttempts = 3
	// retryBaseDelay базовая пауза между попытками, к ней добавляется случайная часть
	retryBaseDelay = 20 * time.Millisecond
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	registry     CatalogRegistry
	txManager    TransactionManager
	cache        CacheInvalidator
	timeProvider TimeProvider
	opts         Options
	logger       Logger
	backoff      func(attempt int) time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	registry CatalogRegistry,
	txManager TransactionManager,
	cache CacheInvalidator,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		registry:     registry,
		txManager:    txManager,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		opts:         opts,
		logger:       logger,
		backoff:      jitterBackoff,
	}
}

// jitterBackoff пауза перед попыткой attempt (с 1): base*attempt плюс случайные [0, base)
func jitterBackoff(attempt int) time.Duration {
	return retryBaseDelay*time.Duration(attempt) + time.Duration(rand.Int63n(int64(retryBaseDelay)))
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому два параллельных запроса на один слот не могут оба завершиться успехом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CreateBooking: flow=%q, date=%s, time=%s, guests=%d", req.Flow, dateStr, req.StartTime, req.Guests)

	// 2. Дата и время по часам студии
	now := uc.timeProvider.Now().In(uc.opts.Location)

	if err := validateDate(req.Date, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Слот из каталога сценария
	cat, err := uc.registry.ForFlow(req.Flow)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownFlow) {
			uc.logger.Warn("CreateBooking: unknown flow %q", req.Flow)
			return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, req.Flow)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot, err := cat.SlotByStart(int(req.Date.Weekday()), req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: no slot at %s on %s for flow %q", req.StartTime, dateStr, req.Flow)
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotNotInCatalog, req.StartTime, req.Date.Weekday())
	}

	if err := validateBookingTime(req.Date, slot.Start, now, uc.opts.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		Flow:          req.Flow,
		BookingDate:   req.Date,
		StartTime:     slot.Start,
		EndTime:       slot.End,
		SlotLabel:     slot.Label,
		Status:        domain.StatusPending,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Guests:        req.Guests,
		Notes:         req.Notes,
	}

	// 4. Проверка пересечений и вставка в сериализуемой транзакции
	// Конфликт сериализации (40001) не означает занятый слот: транзакция повторяется
	result, err := uc.createWithRetry(ctx, slot, booking)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			return nil, err
		case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
			// Параллельная транзакция заняла слот раньше нас
			uc.logger.Warn("CreateBooking: lost race for slot %s on %s: %v", slot.Start, dateStr, err)
			return nil, fmt.Errorf("%w: concurrently booked", ErrSlotNotAvailable)
		case errors.Is(err, txmanager.ErrSerializationFailure):
			uc.logger.Warn("CreateBooking: serialization conflicts persisted after %d attempts on %s: %v", maxTxAttempts, dateStr, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
		default:
			uc.logger.Error("CreateBooking: failed to create booking on %s: %v", dateStr, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 5. Сбрасываем кэш доступности на дату
	if err := uc.cache.Invalidate(ctx, req.Date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate cache for date=%s: %v", dateStr, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		Flow:          result.Flow,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		SlotLabel:     result.SlotLabel,
		Status:        string(result.Status),
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		Guests:        result.Guests,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// createWithRetry выполняет проверку и вставку, повторяя транзакцию при ErrSerializationFailure
func (uc *UseCase) createWithRetry(ctx context.Context, slot domain.TimeSlot, draft *domain.Booking) (*domain.Booking, error) {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		var created *domain.Booking
		created, err = uc.checkAndCreate(ctx, slot, draft)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, txmanager.ErrSerializationFailure) || attempt == maxTxAttempts {
			return nil, err
		}

		uc.logger.Warn("CreateBooking: serialization conflict on attempt %d/%d, retrying", attempt, maxTxAttempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.backoff(attempt)):
		}
	}
	return nil, err
}

// checkAndCreate одна попытка: блокировка интервалов даты, проверка пересечений, вставка
func (uc *UseCase) checkAndCreate(ctx context.Context, slot domain.TimeSlot, draft *domain.Booking) (*domain.Booking, error) {
	var result *domain.Booking
	dateStr := draft.BookingDate.Format(domain.DateFormat)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.LockIntervalsForDate(txCtx, draft.BookingDate)
		if err != nil {
			return fmt.Errorf("lock booking intervals: %w", err)
		}

		// 4.2. Ручные блоки на дату
		blocks, err := uc.blockRepo.IntervalsForDate(txCtx, draft.BookingDate)
		if err != nil {
			return fmt.Errorf("read manual blocks: %w", err)
		}

		// 4.3. Проверяем доступность слота
		intervals := append(bookings, blocks...)
		if conflict, ok := findConflict(slot, intervals); ok {
			uc.logger.Warn("CreateBooking: slot %s-%s on %s overlaps %s interval %s-%s",
				slot.Start, slot.End, dateStr, conflict.Status, conflict.Start, conflict.End)
			return ErrSlotNotAvailable
		}

		// 4.4. Создаем бронирование, у каждой попытки свой экземпляр
		booking := *draft
		booking.Reference = uuid.NewString()

		created, err := uc.bookingRepo.Create(txCtx, &booking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

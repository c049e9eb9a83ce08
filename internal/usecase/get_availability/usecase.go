package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// UseCase расчёт доступности слотов на дату
//
// Результат носит рекомендательный характер: "свободен" значит "нет известных конфликтов
// на момент чтения". Окончательная проверка выполняется при создании бронирования
type UseCase struct {
	store    IntervalStore
	registry CatalogRegistry
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store IntervalStore, registry CatalogRegistry, logger Logger) *UseCase {
	return &UseCase{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Execute выполняет use case получения доступности
// При ошибке возвращается только ошибка, частичных результатов нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailability: flow=%q, date=%s", req.Flow, dateStr)

	// 2. Каталог сценария
	cat, err := uc.registry.ForFlow(req.Flow)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownFlow) {
			uc.logger.Warn("GetAvailability: unknown flow %q", req.Flow)
			return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, req.Flow)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// 3. Снимок занятых интервалов на дату
	intervals, err := uc.store.IntervalsForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to read intervals for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 4. Разбиение слотов
	partition, err := Resolve(req.Date, cat, intervals)
	if err != nil {
		// Для корректной даты день недели всегда в 0..6, сюда попасть не должны
		uc.logger.Error("GetAvailability: failed to resolve date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	uc.logger.Info("GetAvailability: flow=%q, date=%s, intervals=%d, slots=%d, available=%d, blocked=%d",
		req.Flow, dateStr, len(intervals), len(partition.All), len(partition.Available), len(partition.Blocked))

	return &Response{
		Date:           req.Date,
		Flow:           req.Flow,
		AllSlots:       partition.All,
		AvailableSlots: partition.Available,
		BlockedSlots:   partition.Blocked,
	}, nil
}

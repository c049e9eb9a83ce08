package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockIntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error)
}

// BlockRepository интерфейс репозитория ручных блоков
type BlockRepository interface {
	IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error)
}

// CatalogRegistry каталоги слотов по сценариям бронирования
type CatalogRegistry interface {
	ForFlow(name string) (*catalog.Catalog, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator сбрасывает закэшированные интервалы за дату
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

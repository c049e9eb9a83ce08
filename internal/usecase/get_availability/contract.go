package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// IntervalStore источник занятых интервалов (бронирования + ручные блоки)
// Возвращает только интервалы, занимающие ёмкость, одним согласованным снимком
type IntervalStore interface {
	IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error)
}

// CatalogRegistry каталоги слотов по сценариям бронирования
type CatalogRegistry interface {
	ForFlow(name string) (*catalog.Catalog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

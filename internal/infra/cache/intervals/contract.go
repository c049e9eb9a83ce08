package intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Source источник истины для занятых интервалов (snapshot.Store)
type Source interface {
	IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// IntervalSource источник занятых интервалов за дату
type IntervalSource interface {
	IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error)
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

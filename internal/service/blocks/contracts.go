package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BlockRepository интерфейс репозитория ручных блоков
type BlockRepository interface {
	Create(ctx context.Context, block *domain.ManualBlock) (*domain.ManualBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.ManualBlock, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.ManualBlock, error)
	Delete(ctx context.Context, id int64) error
}

// CacheInvalidator сбрасывает закэшированные интервалы за дату
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

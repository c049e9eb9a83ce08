package list_blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks/models"
)

type BlockService interface {
	ListByDate(ctx context.Context, date time.Time) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// CreateBlockRequest запрос на создание ручного блока
type CreateBlockRequest struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
}

// BlockResponse ответ с данными блока
type BlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`      // "2025-10-15"
	StartTime string    `json:"startTime"` // "11:00"
	EndTime   string    `json:"endTime"`   // "11:45"
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блоков
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.ManualBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		Date:      b.BlockDate.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.ManualBlock) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		if r := FromDomainBlock(b); r != nil {
			resp.Blocks = append(resp.Blocks, *r)
		}
	}
	return resp
}

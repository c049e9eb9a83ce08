package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	blockRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/block"
	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks/models"
)

// Service сервис ручных блоков (санобработка, частные мероприятия)
type Service struct {
	blockRepo BlockRepository
	cache     CacheInvalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса блоков
func NewService(blockRepo BlockRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Create закрывает интервал на дату. Блок может перекрывать существующие бронирования,
// они остаются в силе, новые на этот интервал создать нельзя
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	s.logger.Info("Create: blocking %s %s-%s", dateStr, req.StartTime, req.EndTime)

	created, err := s.blockRepo.Create(ctx, &domain.ManualBlock{
		BlockDate: req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		s.logger.Error("Create: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create", created.BlockDate)

	s.logger.Info("Create: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// ListByDate получает блоки за дату
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.BlockListResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	blocks, err := s.blockRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// Delete снимает блок
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: removing block id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: failed to delete block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete", block.BlockDate)

	s.logger.Info("Delete: successfully removed block id=%d", id)
	return nil
}

func validateCreate(req *models.CreateBlockRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}
	if len(req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, op string, date time.Time) {
	if err := s.cache.Invalidate(ctx, date); err != nil {
		s.logger.Warn("%s: failed to invalidate cache for date=%s: %v", op, date.Format(domain.DateFormat), err)
	}
}

package block

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const tableBlocks = "manual_blocks"

var blockColumns = []string{"id", "block_date", "start_time", "end_time", "reason", "created_at"}

// Repository репозиторий ручных блоков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ручных блоков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ручной блок
func (r *Repository) Create(ctx context.Context, block *domain.ManualBlock) (*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBlocks).
		Columns("block_date", "start_time", "end_time", "reason").
		Values(block.BlockDate, block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блок по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(tableBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return block, nil
}

// ListByDate получает блоки на дату, отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(tableBlocks).
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ManualBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// IntervalsForDate проекция блоков на дату для расчёта доступности
func (r *Repository) IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error) {
	blocks, err := r.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	intervals := make([]domain.BookedInterval, len(blocks))
	for i, b := range blocks {
		intervals[i] = b.ToInterval()
	}

	return intervals, nil
}

// Delete удаляет блок
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.ManualBlock, error) {
	var block domain.ManualBlock
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.BlockDate,
		&block.StartTime,
		&block.EndTime,
		&block.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	block.CreatedAt = createdAt.Time

	return &block, nil
}

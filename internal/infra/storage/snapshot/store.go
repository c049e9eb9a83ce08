package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Store собирает бронирования и ручные блоки за дату из одного снимка БД
type Store struct {
	bookings  IntervalSource
	blocks    IntervalSource
	txManager TxManager
}

// NewStore создает хранилище занятых интервалов
func NewStore(bookings, blocks IntervalSource, txManager TxManager) *Store {
	return &Store{
		bookings:  bookings,
		blocks:    blocks,
		txManager: txManager,
	}
}

// IntervalsForDate возвращает все занятые интервалы за дату, отсортированные по началу
// Оба чтения выполняются в одной read-only транзакции, поэтому результат согласован
func (s *Store) IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error) {
	var result []domain.BookedInterval

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		bookings, err := s.bookings.IntervalsForDate(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadBookings, err)
		}

		blocks, err := s.blocks.IntervalsForDate(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadBlocks, err)
		}

		result = make([]domain.BookedInterval, 0, len(bookings)+len(blocks))
		result = append(result, bookings...)
		result = append(result, blocks...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.IsBefore(result[j].Start)
	})

	return result, nil
}

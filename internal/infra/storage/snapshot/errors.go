package snapshot

import "errors"

var (
	// ErrReadBookings ошибка чтения интервалов бронирований
	ErrReadBookings = errors.New("snapshot: failed to read booking intervals")

	// ErrReadBlocks ошибка чтения ручных блоков
	ErrReadBlocks = errors.New("snapshot: failed to read manual blocks")
)

package intervals

import "errors"

var (
	// ErrInvalidate ошибка удаления ключа из кэша
	ErrInvalidate = errors.New("intervals.cache: failed to invalidate")
)

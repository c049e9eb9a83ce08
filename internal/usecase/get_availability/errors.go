package get_availability

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument некорректные входные данные, повтор не поможет
	ErrInvalidArgument = errors.New("get_availability: invalid argument")

	// ErrInvalidDate дата отсутствует или некорректна
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrInvalidArgument)

	// ErrUnknownFlow сценарий бронирования не найден
	ErrUnknownFlow = errors.New("get_availability: unknown flow")

	// ErrStoreUnavailable не удалось прочитать бронирования. Доступность неизвестна,
	// бронирование разрешать нельзя. Запрос можно повторить
	ErrStoreUnavailable = errors.New("get_availability: booking store unavailable")
)

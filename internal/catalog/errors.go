package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument нарушение контракта вызывающей стороной
	ErrInvalidArgument = errors.New("catalog: invalid argument")

	// ErrInvalidWeekday день недели вне диапазона 0..6
	ErrInvalidWeekday = fmt.Errorf("%w: weekday must be in range 0..6", ErrInvalidArgument)

	// ErrInvalidSlot некорректное описание слота в конфигурации
	ErrInvalidSlot = errors.New("catalog: invalid slot definition")

	// ErrInvalidFlow некорректное описание сценария бронирования в конфигурации
	ErrInvalidFlow = errors.New("catalog: invalid flow definition")

	// ErrUnknownFlow сценарий бронирования не найден
	ErrUnknownFlow = errors.New("catalog: unknown flow")

	// ErrSlotNotFound слот с таким временем начала не предлагается в этот день
	ErrSlotNotFound = errors.New("catalog: slot not found")
)

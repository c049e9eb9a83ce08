package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrUnknownFlow возвращается, когда сценарий бронирования не найден
	ErrUnknownFlow = errors.New("create_booking: unknown flow")

	// ErrSlotNotInCatalog возвращается, когда в каталоге сценария нет слота с таким началом в этот день недели
	ErrSlotNotInCatalog = errors.New("create_booking: slot is not in catalog")

	// ErrTooLateToBook возвращается, когда слот уже начался или нарушен minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с бронированием или блоком
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrConcurrentUpdate конфликт сериализации не разрешился за maxTxAttempts попыток, запрос можно повторить
	ErrConcurrentUpdate = errors.New("create_booking: too many concurrent writes, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

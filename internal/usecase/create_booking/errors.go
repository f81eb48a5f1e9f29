package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("create_booking: vendor not found")

	// ErrTooLateToBook возвращается, когда бронирование нарушает lead time
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда хотя бы один слот диапазона уже занят
	// Вызывающий должен перечитать доступность и выбрать другой слот
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrIdempotencyKeyReuse возвращается при повторном использовании ключа
	// идемпотентности с другими параметрами запроса — это ошибка контракта клиента
	ErrIdempotencyKeyReuse = errors.New("create_booking: idempotency key reused with different request data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

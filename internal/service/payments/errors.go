package payments

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("payments.service: booking not found")

	// ErrBookingNotPending возвращается при попытке инициализировать платеж
	// для бронирования не в статусе pending
	ErrBookingNotPending = errors.New("payments.service: booking is not in pending state")

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payments.service: payment not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)

package process_webhook

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном payload уведомления
	ErrInvalidInput = errors.New("process_webhook: invalid webhook payload")

	// ErrPaymentNotFound возвращается, когда платеж по ссылке не найден
	ErrPaymentNotFound = errors.New("process_webhook: payment not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_webhook: internal error")
)

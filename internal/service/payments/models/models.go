package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// InitializeResponse результат инициализации платежа
type InitializeResponse struct {
	Ref      string  // Внешняя ссылка платежа
	Status   string  // Статус платежа
	Amount   float64 // Фиксированная стоимость бронирования
	Currency string  // Валюта
}

// StatusResponse текущее состояние платежа вместе с бронированием
type StatusResponse struct {
	Ref       string
	Status    string
	BookingID int64
	Booking   BookingInfo
	CreatedAt time.Time
}

// BookingInfo сведения о бронировании в ответе статуса платежа
type BookingInfo struct {
	ID           int64
	Status       string
	StartTimeUTC time.Time
	EndTimeUTC   time.Time
}

// FromDomainPayment конвертирует платеж и бронирование в StatusResponse
func FromDomainPayment(payment *domain.Payment, booking *domain.Booking) *StatusResponse {
	return &StatusResponse{
		Ref:       payment.Ref,
		Status:    string(payment.Status),
		BookingID: payment.BookingID,
		Booking: BookingInfo{
			ID:           booking.ID,
			Status:       string(booking.Status),
			StartTimeUTC: booking.StartTimeUTC,
			EndTimeUTC:   booking.EndTimeUTC,
		},
		CreatedAt: payment.CreatedAt,
	}
}

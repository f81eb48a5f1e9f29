package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingResponse бронирование вместе с вендором и локальными метками времени
// Локальные метки — производные для отображения, источник истины — UTC instants
type BookingResponse struct {
	ID             int64
	VendorID       int64
	Vendor         VendorInfo
	BuyerID        string
	StartTimeUTC   time.Time
	EndTimeUTC     time.Time
	StartTimeLocal types.TimeString
	EndTimeLocal   types.TimeString
	Status         string
	CreatedAt      time.Time
}

// VendorInfo сведения о вендоре в ответе бронирования
type VendorInfo struct {
	ID       int64
	Name     string
	Timezone string
}

// FromDomainBooking собирает BookingResponse из доменных моделей
func FromDomainBooking(booking *domain.Booking, vendor *domain.Vendor, startLocal, endLocal types.TimeString) *BookingResponse {
	return &BookingResponse{
		ID:       booking.ID,
		VendorID: booking.VendorID,
		Vendor: VendorInfo{
			ID:       vendor.ID,
			Name:     vendor.Name,
			Timezone: vendor.Timezone,
		},
		BuyerID:        booking.BuyerID,
		StartTimeUTC:   booking.StartTimeUTC,
		EndTimeUTC:     booking.EndTimeUTC,
		StartTimeLocal: startLocal,
		EndTimeLocal:   endLocal,
		Status:         string(booking.Status),
		CreatedAt:      booking.CreatedAt,
	}
}

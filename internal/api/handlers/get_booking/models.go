package get_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// VendorResponse вендор в HTTP ответе бронирования
type VendorResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64          `json:"id"`
	VendorID       int64          `json:"vendorId"`
	Vendor         VendorResponse `json:"vendor"`
	BuyerID        string         `json:"buyerId"`
	StartTimeUTC   string         `json:"startTimeUtc"`
	EndTimeUTC     string         `json:"endTimeUtc"`
	StartTimeLocal string         `json:"startTimeLocal"`
	EndTimeLocal   string         `json:"endTimeLocal"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:       resp.ID,
		VendorID: resp.VendorID,
		Vendor: VendorResponse{
			ID:       resp.Vendor.ID,
			Name:     resp.Vendor.Name,
			Timezone: resp.Vendor.Timezone,
		},
		BuyerID:        resp.BuyerID,
		StartTimeUTC:   resp.StartTimeUTC.Format(time.RFC3339),
		EndTimeUTC:     resp.EndTimeUTC.Format(time.RFC3339),
		StartTimeLocal: resp.StartTimeLocal.String(),
		EndTimeLocal:   resp.EndTimeLocal.String(),
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}

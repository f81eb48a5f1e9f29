package get_payment_status

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/payments/models"
)

// BookingResponse сведения о бронировании в HTTP ответе
type BookingResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	StartTimeUTC string `json:"startTimeUtc"`
	EndTimeUTC   string `json:"endTimeUtc"`
}

// PaymentStatusResponse HTTP response model
type PaymentStatusResponse struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	BookingID int64           `json:"bookingId"`
	Booking   BookingResponse `json:"booking"`
	CreatedAt string          `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.StatusResponse) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		Reference: resp.Ref,
		Status:    resp.Status,
		BookingID: resp.BookingID,
		Booking: BookingResponse{
			ID:           resp.Booking.ID,
			Status:       resp.Booking.Status,
			StartTimeUTC: resp.Booking.StartTimeUTC.Format(time.RFC3339),
			EndTimeUTC:   resp.Booking.EndTimeUTC.Format(time.RFC3339),
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}

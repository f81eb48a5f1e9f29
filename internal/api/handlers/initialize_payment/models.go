package initialize_payment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/payments/models"
)

// InitializePaymentRequest HTTP request model
type InitializePaymentRequest struct {
	BookingID int64 `json:"bookingId"`
}

// InitializePaymentResponse HTTP response model
type InitializePaymentResponse struct {
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.InitializeResponse) *InitializePaymentResponse {
	return &InitializePaymentResponse{
		Reference: resp.Ref,
		Status:    resp.Status,
		Amount:    resp.Amount,
		Currency:  resp.Currency,
	}
}

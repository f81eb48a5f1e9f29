package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VendorID  int64  `json:"vendorId"`
	StartTime string `json:"startTime"` // "2026-09-15T10:00:00Z"
	EndTime   string `json:"endTime"`   // "2026-09-15T10:30:00Z"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Ключ идемпотентности приходит заголовком и добавляется отдельно
func (r *CreateBookingRequest) ToUseCaseRequest(idempotencyKey string) (*createBooking.Request, error) {
	// Парсим UTC instants
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		VendorID:       r.VendorID,
		StartUTC:       start.UTC(),
		EndUTC:         end.UTC(),
		IdempotencyKey: idempotencyKey,
	}, nil
}

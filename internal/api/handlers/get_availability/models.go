package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// SlotResponse свободный слот в HTTP ответе
type SlotResponse struct {
	StartTimeUTC string `json:"startTimeUtc"`
	LocalTime    string `json:"localTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VendorID int64          `json:"vendorId"`
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
	Total    int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTimeUTC: s.StartUTC.Format(time.RFC3339),
			LocalTime:    s.LocalLabel.String(),
		})
	}

	return &AvailabilityResponse{
		VendorID: resp.VendorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Slots:    slots,
		Total:    len(slots),
	}
}

package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.StartUTC.IsZero() {
		return fmt.Errorf("%w: startUtc is required", ErrInvalidInput)
	}

	if req.EndUTC.IsZero() {
		return fmt.Errorf("%w: endUtc is required", ErrInvalidInput)
	}

	if !req.EndUTC.After(req.StartUTC) {
		return fmt.Errorf("%w: endUtc must be after startUtc", ErrInvalidInput)
	}

	duration := req.EndUTC.Sub(req.StartUTC)
	if duration%domain.SlotDuration != 0 {
		return fmt.Errorf("%w: booking duration must be a multiple of %d minutes",
			ErrInvalidInput, domain.SlotDurationMinutes)
	}

	return nil
}

package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotClaim is the atomic unit of contention: a durable record marking a
// 30-minute slot as taken by a specific booking. The pair (VendorID, SlotStartUTC)
// is unique across all claims, which is the sole mechanism preventing double-booking.
type SlotClaim struct {
	ID           int64
	BookingID    int64
	VendorID     int64
	SlotStartUTC time.Time
	CreatedAt    time.Time
}

// AvailableSlot represents a free 30-minute slot offered to the buyer
type AvailableSlot struct {
	StartUTC   time.Time
	LocalLabel types.TimeString // local clock label for display, never a source of truth
}

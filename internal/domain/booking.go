package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusPaid      BookingStatus = "paid"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a buyer's reservation of a contiguous UTC time range
// on one vendor's calendar. The range is covered by SlotClaim rows, one per
// 30-minute increment; booking and claims are created atomically.
type Booking struct {
	ID           int64
	VendorID     int64
	BuyerID      string // anonymous placeholder in the current design
	StartTimeUTC time.Time
	EndTimeUTC   time.Time
	Status       BookingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPending returns true if the booking has not been paid yet
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsPaid returns true if the booking has been paid
func (b *Booking) IsPaid() bool {
	return b.Status == StatusPaid
}

// CanBePaid returns true if the booking can transition to "paid"
func (b *Booking) CanBePaid() bool {
	return b.Status == StatusPending
}

// SlotStarts returns the ordered sequence of 30-minute slot start instants
// covering [StartTimeUTC, EndTimeUTC)
func (b *Booking) SlotStarts() []time.Time {
	return SlotStartsInRange(b.StartTimeUTC, b.EndTimeUTC)
}

// SlotStartsInRange returns the ordered 30-minute slot start instants covering [start, end)
func SlotStartsInRange(start, end time.Time) []time.Time {
	starts := make([]time.Time, 0)
	for current := start; current.Before(end); current = current.Add(SlotDuration) {
		starts = append(starts, current)
	}
	return starts
}

package domain

import "time"

// Vendor represents a service vendor whose calendar can be booked
type Vendor struct {
	ID        int64
	Name      string
	Timezone  string // IANA timezone name, single business timezone in the current design
	CreatedAt time.Time
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStartsInRange(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want []time.Time
	}{
		{
			name: "single slot",
			end:  start.Add(30 * time.Minute),
			want: []time.Time{start},
		},
		{
			name: "three slots",
			end:  start.Add(90 * time.Minute),
			want: []time.Time{
				start,
				start.Add(30 * time.Minute),
				start.Add(60 * time.Minute),
			},
		},
		{
			name: "empty range",
			end:  start,
			want: []time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotStartsInRange(start, tt.end))
		})
	}
}

func TestBooking_StatusChecks(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	assert.True(t, pending.IsPending())
	assert.True(t, pending.CanBePaid())
	assert.False(t, pending.IsPaid())

	paid := &Booking{Status: StatusPaid}
	assert.True(t, paid.IsPaid())
	assert.False(t, paid.CanBePaid())

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanBePaid())
}

func TestParseWebhookEvent(t *testing.T) {
	event := ParseWebhookEvent(EventChargeSuccess, "pay_abc")
	require.Equal(t, WebhookEventChargeSuccess, event.Kind)
	assert.Equal(t, "pay_abc", event.Reference)

	unknown := ParseWebhookEvent("charge.refunded", "pay_abc")
	assert.Equal(t, WebhookEventIgnored, unknown.Kind)
	assert.Equal(t, "charge.refunded", unknown.Type)
}

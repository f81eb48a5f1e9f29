package domain

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is a one-to-one companion of a Booking: an externally-visible
// payment reference plus an event log of provider-side events for audit
type Payment struct {
	ID           int64
	BookingID    int64
	Ref          string // opaque, unguessable reference exposed to the payment collaborator
	Status       PaymentStatus
	RawEventJSON json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSuccessful returns true if the payment has already been confirmed
func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentStatusSuccess
}

// WebhookEventKind tagged kind of an incoming payment notification
type WebhookEventKind int

const (
	// WebhookEventIgnored любое событие, которое сервис не обрабатывает
	// Подтверждается как проигнорированное, не является ошибкой
	WebhookEventIgnored WebhookEventKind = iota
	// WebhookEventChargeSuccess успешное списание средств
	WebhookEventChargeSuccess
)

// EventChargeSuccess имя события успешной оплаты у платежного провайдера
const EventChargeSuccess = "charge.success"

// WebhookEvent типизированное входящее событие платежного провайдера
type WebhookEvent struct {
	Kind      WebhookEventKind
	Type      string // исходное имя события
	Reference string
}

// ParseWebhookEvent классифицирует входящее событие по имени
// Неизвестные события получают kind WebhookEventIgnored
func ParseWebhookEvent(eventType, reference string) WebhookEvent {
	event := WebhookEvent{
		Type:      eventType,
		Reference: reference,
		Kind:      WebhookEventIgnored,
	}

	if eventType == EventChargeSuccess {
		event.Kind = WebhookEventChargeSuccess
	}

	return event
}

package domain

import (
	"encoding/json"
	"time"
)

// Idempotency scopes: один и тот же ключ в разных scope — разные записи
const (
	ScopeBooking = "booking"
	ScopeWebhook = "webhook"
)

// IdempotencyRecord stores the canonical outcome of the first request seen
// under a client-supplied key. A later request with the same key and the same
// request hash replays ResponseData verbatim; a different hash is a client
// contract violation.
type IdempotencyRecord struct {
	KeyValue     string
	Scope        string
	RequestHash  string
	ResponseData json.RawMessage
	CreatedAt    time.Time
}

package process_webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Request модель входящего уведомления платежного провайдера
type Request struct {
	EventType  string          // Имя события, например "charge.success"
	Reference  string          // Внешняя ссылка платежа
	RawPayload json.RawMessage // Полный payload уведомления для event log'а
}

// Response модель результата обработки уведомления
// JSON-теги фиксируют канонический вид ответа, сохраняемый в ledger идемпотентности
type Response struct {
	Ignored          bool      `json:"-"`                   // Событие не обрабатывается сервисом
	EventType        string    `json:"-"`                   // Имя проигнорированного события
	Reference        string    `json:"reference,omitempty"` // Ссылка платежа
	PaymentStatus    string    `json:"paymentStatus,omitempty"`
	BookingStatus    string    `json:"bookingStatus,omitempty"`
	BookingID        int64     `json:"bookingId,omitempty"`
	ProcessedAt      time.Time `json:"processedAt,omitempty"`
	AlreadyProcessed bool      `json:"wasAlreadyProcessed"`
}

// canonicalHash вычисляет хэш канонизированных параметров уведомления
func (r *Request) canonicalHash() string {
	sum := sha256.Sum256([]byte(r.EventType + "|" + r.Reference))
	return hex.EncodeToString(sum[:])
}

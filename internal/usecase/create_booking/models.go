package create_booking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	VendorID       int64     // ID вендора
	StartUTC       time.Time // Начало диапазона (UTC)
	EndUTC         time.Time // Конец диапазона (UTC, исключительно)
	IdempotencyKey string    // Ключ идемпотентности (опционально)
}

// Response модель ответа с созданным бронированием
// JSON-теги фиксируют канонический вид ответа, сохраняемый в ledger
// идемпотентности: повторный запрос получает побайтово тот же ответ
type Response struct {
	ID           int64     `json:"id"`
	VendorID     int64     `json:"vendorId"`
	BuyerID      string    `json:"buyerId"`
	StartTimeUTC time.Time `json:"startTimeUtc"`
	EndTimeUTC   time.Time `json:"endTimeUtc"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// canonicalHash вычисляет хэш канонизированных параметров запроса
// Используется для обнаружения повторного использования ключа с другим payload
func (r *Request) canonicalHash() string {
	canonical := fmt.Sprintf("%d|%s|%s",
		r.VendorID,
		r.StartUTC.UTC().Format(time.RFC3339),
		r.EndUTC.UTC().Format(time.RFC3339),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

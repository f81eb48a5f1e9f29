package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateSlotClaims(ctx context.Context, bookingID, vendorID int64, slotStarts []time.Time) error
}

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

// IdempotencyRepository интерфейс ledger'а идемпотентности
type IdempotencyRepository interface {
	Get(ctx context.Context, key, scope string) (*domain.IdempotencyRecord, error)
	Create(ctx context.Context, record *domain.IdempotencyRecord) error
}

// TimezoneService интерфейс сервиса таймзоны для проверки lead time
type TimezoneService interface {
	ValidateLeadTime(startUTC, now time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

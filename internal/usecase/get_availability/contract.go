package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetClaimedSlotStarts возвращает занятые instants вендора из переданного набора
	GetClaimedSlotStarts(ctx context.Context, vendorID int64, slotStarts []time.Time) ([]time.Time, error)
}

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

// TimezoneService интерфейс сервиса таймзоны
type TimezoneService interface {
	GenerateDaySlots(localDate time.Time) []time.Time
	LocalClock(utc time.Time) types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package vendors

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	List(ctx context.Context) ([]*domain.Vendor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

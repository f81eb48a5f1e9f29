package initialize_payment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/payments/models"
)

type PaymentsService interface {
	Initialize(ctx context.Context, bookingID int64) (*models.InitializeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_payment_status

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/payments/models"
)

type PaymentsService interface {
	GetByRef(ctx context.Context, ref string) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

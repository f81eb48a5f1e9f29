package list_vendors

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/vendors/models"
)

type VendorsService interface {
	List(ctx context.Context) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

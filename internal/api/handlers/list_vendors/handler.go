package list_vendors

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service VendorsService
	logger  Logger
}

func NewHandler(service VendorsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /vendors - Failed to list vendors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vendors - Fetched %d vendors", result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

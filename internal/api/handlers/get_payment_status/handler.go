package get_payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/payments"
)

const (
	msgMissingRef      = "не указана ссылка платежа"
	msgPaymentNotFound = "платеж не найден"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/{ref}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := vars["ref"]
	if ref == "" {
		h.logger.Warn("GET /payments/{ref} - Missing payment reference")
		handlers.RespondBadRequest(w, msgMissingRef)
		return
	}

	result, err := h.service.GetByRef(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /payments/{ref} - Payment not found: reference=%s", ref)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("GET /payments/{ref} - Failed to get payment: reference=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/{ref} - Payment fetched: reference=%s, status=%s", ref, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

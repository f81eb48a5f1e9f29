package initialize_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/payments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingNotPending  = "бронирование не ожидает оплаты"
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

// Handle POST /api/v1/payments/initialize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InitializePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/initialize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BookingID <= 0 {
		h.logger.Warn("POST /payments/initialize - Invalid booking ID: %d", req.BookingID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Initialize(r.Context(), req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /payments/initialize - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrBookingNotPending):
			h.logger.Warn("POST /payments/initialize - Booking not pending: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgBookingNotPending)

		default:
			h.logger.Error("POST /payments/initialize - Failed to initialize payment: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/initialize - Payment initialized: booking_id=%d, reference=%s",
		req.BookingID, result.Ref)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

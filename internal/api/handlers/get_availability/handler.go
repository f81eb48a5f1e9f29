package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidVendorID = "некорректный ID вендора"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "не указан параметр date"
	msgVendorNotFound  = "вендор не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vendorID, err := strconv.ParseInt(vars["vendorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/availability - Invalid vendor ID: %s", vars["vendorId"])
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		h.logger.Warn("GET /vendors/{id}/availability - Missing date param: vendor_id=%d", vendorID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Дата интерпретируется как локальная календарная дата бизнес-таймзоны
	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/availability - Invalid date: %s", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		VendorID: vendorID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrVendorNotFound):
			h.logger.Warn("GET /vendors/{id}/availability - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /vendors/{id}/availability - Invalid input: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondBadRequest(w, msgInvalidVendorID)

		default:
			h.logger.Error("GET /vendors/{id}/availability - Failed to get availability: vendor_id=%d, error=%v",
				vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vendors/{id}/availability - Found %d free slots: vendor_id=%d, date=%s",
		len(result.Slots), vendorID, dateParam)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

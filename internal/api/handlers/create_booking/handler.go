package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/timezone"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается RFC3339 (UTC)"
	msgInvalidInput        = "некорректные параметры бронирования"
	msgVendorNotFound      = "вендор не найден"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgIdempotencyKeyReuse = "ключ идемпотентности уже использован с другими параметрами запроса"
)

// idempotencyKeyHeader заголовок ключа идемпотентности
const idempotencyKeyHeader = "Idempotency-Key"

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом UTC instants)
	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: vendor_id=%d, start=%s",
				req.VendorID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /bookings - Vendor not found: vendor_id=%d", req.VendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: vendor_id=%d, start=%s",
				req.VendorID, req.StartTime)
			handlers.RespondBadRequest(w, leadTimeMessage(err))

		case errors.Is(err, createBooking.ErrIdempotencyKeyReuse):
			h.logger.Warn("POST /bookings - Idempotency key reused with different payload: vendor_id=%d", req.VendorID)
			handlers.RespondBadRequest(w, msgIdempotencyKeyReuse)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: vendor_id=%d, error=%v", req.VendorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: vendor_id=%d, error=%v",
				req.VendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, vendor_id=%d",
		result.ID, req.VendorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// leadTimeMessage достает вычисленное минимальное локальное время начала,
// чтобы клиент увидел границу, а не только факт отказа
func leadTimeMessage(err error) string {
	var leadErr *timezone.LeadTimeError
	if errors.As(err, &leadErr) {
		return fmt.Sprintf("слишком поздно для бронирования этого слота: сейчас %s по местному времени, ближайшее доступное начало %s",
			leadErr.NowLocal, leadErr.MinStartLocal)
	}
	return "слишком поздно для бронирования этого слота"
}

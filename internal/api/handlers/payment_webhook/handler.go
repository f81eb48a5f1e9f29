package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	processWebhook "github.com/m04kA/SMC-AppointmentService/internal/usecase/process_webhook"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPayload     = "некорректный payload уведомления"
	msgPaymentNotFound    = "платеж по указанной ссылке не найден"
)

// maxWebhookBodyBytes ограничение размера тела уведомления
const maxWebhookBodyBytes = 1 << 20

type Handler struct {
	useCase ProcessWebhookUseCase
	logger  Logger
}

func NewHandler(useCase ProcessWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Сырое тело сохраняется целиком в event log платежа
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer r.Body.Close()

	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processWebhook.Request{
		EventType:  req.Event,
		Reference:  req.Data.Reference,
		RawPayload: body,
	})
	if err != nil {
		switch {
		case errors.Is(err, processWebhook.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: reference=%s", req.Data.Reference)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, processWebhook.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid payload: event=%s, error=%v", req.Event, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process webhook: reference=%s, error=%v",
				req.Data.Reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Необрабатываемые события подтверждаем без побочных эффектов
	if result.Ignored {
		h.logger.Info("POST /payments/webhook - Event ignored: event=%s", result.EventType)
		handlers.RespondJSON(w, http.StatusOK, IgnoredResponse{
			Status: "ignored",
			Event:  result.EventType,
		})
		return
	}

	h.logger.Info("POST /payments/webhook - Webhook processed: reference=%s, already_processed=%t",
		result.Reference, result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package process_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	idempotencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/idempotency"
	paymentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/payment"
)

// webhookKeyPrefix префикс ключа идемпотентности для webhook-уведомлений
const webhookKeyPrefix = "webhook_"

// UseCase use case обработки уведомления платежного провайдера
// Уведомления могут доставляться многократно; переход pending → paid
// выполняется ровно один раз, повторные доставки получают сохраненный ответ
type UseCase struct {
	paymentRepo     PaymentRepository
	bookingRepo     BookingRepository
	idempotencyRepo IdempotencyRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	idempotencyRepo IdempotencyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:     paymentRepo,
		bookingRepo:     bookingRepo,
		idempotencyRepo: idempotencyRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute обрабатывает уведомление платежного провайдера
// Неизвестные типы событий подтверждаются как проигнорированные (не ошибка).
// Для charge.success: перевод платежа в success и бронирования в paid плюс
// запись ledger выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.EventType == "" {
		uc.logger.Warn("ProcessWebhook: missing event type")
		return nil, fmt.Errorf("%w: event type is required", ErrInvalidInput)
	}

	event := domain.ParseWebhookEvent(req.EventType, req.Reference)

	// Явный вариант "проигнорировано": дверь для будущих типов событий открыта,
	// подтверждаем получение без каких-либо side effects
	if event.Kind == domain.WebhookEventIgnored {
		uc.logger.Info("ProcessWebhook: event %q ignored", req.EventType)
		return &Response{Ignored: true, EventType: req.EventType}, nil
	}

	if req.Reference == "" {
		uc.logger.Warn("ProcessWebhook: missing payment reference")
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	uc.logger.Info("ProcessWebhook: event=%s, reference=%s", req.EventType, req.Reference)

	key := webhookKeyPrefix + req.Reference
	requestHash := req.canonicalHash()

	// Проверка идемпотентности: повторная доставка получает сохраненный ответ
	response, err := uc.replayFromLedger(ctx, key, requestHash)
	if err != nil && !errors.Is(err, idempotencyRepo.ErrRecordNotFound) {
		return nil, err
	}
	if response != nil {
		uc.logger.Info("ProcessWebhook: idempotent replay for reference=%s", req.Reference)
		return response, nil
	}

	payment, err := uc.paymentRepo.GetByRef(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("ProcessWebhook: payment reference=%s not found", req.Reference)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("ProcessWebhook: failed to get payment reference=%s: %v", req.Reference, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// Повторная доставка без записи в ledger (например, после сбоя записи ключа):
	// платеж уже success, мутаций не делаем, но ответ по-прежнему успешный
	alreadyProcessed := payment.IsSuccessful()

	result := &Response{
		Reference:        req.Reference,
		PaymentStatus:    string(domain.PaymentStatusSuccess),
		BookingStatus:    string(domain.StatusPaid),
		BookingID:        payment.BookingID,
		ProcessedAt:      uc.timeProvider.Now().UTC(),
		AlreadyProcessed: alreadyProcessed,
	}

	responseData, err := json.Marshal(result)
	if err != nil {
		uc.logger.Error("ProcessWebhook: failed to marshal response: %v", err)
		return nil, fmt.Errorf("%w: failed to marshal response: %v", ErrInternal, err)
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !alreadyProcessed {
			mergedLog, err := uc.appendEventLog(payment.RawEventJSON, req.RawPayload, result.ProcessedAt)
			if err != nil {
				uc.logger.Error("ProcessWebhook: failed to build event log: %v", err)
				return fmt.Errorf("%w: failed to build event log: %v", ErrInternal, err)
			}

			if err := uc.paymentRepo.MarkSuccess(txCtx, payment.ID, mergedLog); err != nil {
				uc.logger.Error("ProcessWebhook: failed to mark payment success: %v", err)
				return fmt.Errorf("%w: failed to mark payment success: %v", ErrInternal, err)
			}

			if err := uc.bookingRepo.UpdateStatus(txCtx, payment.BookingID, domain.StatusPaid); err != nil {
				uc.logger.Error("ProcessWebhook: failed to mark booking paid: %v", err)
				return fmt.Errorf("%w: failed to mark booking paid: %v", ErrInternal, err)
			}
		}

		record := &domain.IdempotencyRecord{
			KeyValue:     key,
			Scope:        domain.ScopeWebhook,
			RequestHash:  requestHash,
			ResponseData: responseData,
		}

		if err := uc.idempotencyRepo.Create(txCtx, record); err != nil {
			if errors.Is(err, idempotencyRepo.ErrDuplicateKey) {
				return err
			}
			uc.logger.Error("ProcessWebhook: failed to store idempotency record: %v", err)
			return fmt.Errorf("%w: failed to store idempotency record: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Параллельная доставка того же уведомления успела первой — возвращаем её ответ
		if errors.Is(err, idempotencyRepo.ErrDuplicateKey) {
			replayed, replayErr := uc.replayFromLedger(ctx, key, requestHash)
			if replayErr == nil && replayed != nil {
				uc.logger.Info("ProcessWebhook: converged on stored response for reference=%s", req.Reference)
				return replayed, nil
			}
			return nil, fmt.Errorf("%w: failed to converge on stored response: %v", ErrInternal, err)
		}
		return nil, err
	}

	if alreadyProcessed {
		uc.logger.Info("ProcessWebhook: payment reference=%s already successful, no-op", req.Reference)
	} else {
		uc.logger.Info("ProcessWebhook: payment reference=%s marked success, booking id=%d marked paid",
			req.Reference, payment.BookingID)
	}

	return result, nil
}

// replayFromLedger возвращает сохраненный ответ по ключу идемпотентности
func (uc *UseCase) replayFromLedger(ctx context.Context, key, requestHash string) (*Response, error) {
	record, err := uc.idempotencyRepo.Get(ctx, key, domain.ScopeWebhook)
	if err != nil {
		if errors.Is(err, idempotencyRepo.ErrRecordNotFound) {
			return nil, err
		}
		uc.logger.Error("ProcessWebhook: failed to check idempotency key=%q: %v", key, err)
		return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
	}

	// Ключ выводится из ссылки платежа, расхождение хэша означает другой payload
	// под тем же ключом — отвергаем как некорректное уведомление
	if record.RequestHash != requestHash {
		uc.logger.Warn("ProcessWebhook: key=%q seen with different payload", key)
		return nil, fmt.Errorf("%w: notification payload differs from previously processed one", ErrInvalidInput)
	}

	var response Response
	if err := json.Unmarshal(record.ResponseData, &response); err != nil {
		uc.logger.Error("ProcessWebhook: failed to unmarshal stored response for key=%q: %v", key, err)
		return nil, fmt.Errorf("%w: failed to unmarshal stored response: %v", ErrInternal, err)
	}

	return &response, nil
}

// appendEventLog дописывает факт получения webhook'а в event log платежа
func (uc *UseCase) appendEventLog(current, payload json.RawMessage, receivedAt time.Time) (json.RawMessage, error) {
	log := make(map[string]interface{})
	if len(current) > 0 {
		// Существующий лог сохраняем; если он поврежден, начинаем новый
		if err := json.Unmarshal(current, &log); err != nil {
			log = make(map[string]interface{})
		}
	}

	log["webhook_received_at"] = receivedAt.Format(time.RFC3339)
	if len(payload) > 0 {
		log["event_data"] = json.RawMessage(payload)
	}

	return json.Marshal(log)
}

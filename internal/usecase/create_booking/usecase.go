package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	idempotencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/idempotency"
	vendorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-AppointmentService/internal/timezone"
)

// UseCase use case создания бронирования
// Гарантирует не более одного успешного бронирования на слот даже при
// конкурентных запросах: единственный механизм защиты — уникальное ограничение
// (vendor_id, slot_start_utc), проверяемое СУБД атомарно со вставкой claim-строк
type UseCase struct {
	bookingRepo     BookingRepository
	vendorRepo      VendorRepository
	idempotencyRepo IdempotencyRepository
	tzService       TimezoneService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	idempotencyRepo IdempotencyRepository,
	tzService TimezoneService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		vendorRepo:      vendorRepo,
		idempotencyRepo: idempotencyRepo,
		tzService:       tzService,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Бронирование, claim-строки слотов и запись в ledger идемпотентности
// создаются в одной сериализуемой транзакции: либо всё, либо ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: vendor=%d, start=%s, end=%s, key=%q",
		req.VendorID, req.StartUTC.Format(domain.DateFormat+" 15:04"), req.EndUTC.Format(domain.DateFormat+" 15:04"), req.IdempotencyKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	requestHash := req.canonicalHash()

	// 2. Проверка идемпотентности: повтор с тем же ключом возвращает сохраненный
	// ответ без каких-либо side effects; тот же ключ с другим payload — ошибка клиента
	if req.IdempotencyKey != "" {
		response, err := uc.replayFromLedger(ctx, req.IdempotencyKey, requestHash)
		if err != nil && !errors.Is(err, idempotencyRepo.ErrRecordNotFound) {
			return nil, err
		}
		if response != nil {
			uc.logger.Info("CreateBooking: idempotent replay for key=%q", req.IdempotencyKey)
			return response, nil
		}
	}

	// 3. Проверяем существование вендора
	if _, err := uc.vendorRepo.GetByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("CreateBooking: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	// 4. Проверка lead time: правило вычисляется здесь, на стороне сервера,
	// клиентским данным не доверяем
	now := uc.timeProvider.Now()
	if err := uc.tzService.ValidateLeadTime(req.StartUTC, now); err != nil {
		if errors.Is(err, timezone.ErrTooLateToBook) {
			uc.logger.Warn("CreateBooking: lead time violation: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrTooLateToBook, err)
		}
		uc.logger.Error("CreateBooking: lead time check failed: %v", err)
		return nil, fmt.Errorf("%w: lead time check failed: %v", ErrInternal, err)
	}

	// 5. Атомарная единица: бронирование + claim-строки слотов + запись ledger
	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			VendorID:     req.VendorID,
			BuyerID:      domain.BuyerAnonymous,
			StartTimeUTC: req.StartUTC.UTC(),
			EndTimeUTC:   req.EndUTC.UTC(),
			Status:       domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// Claim-строки по одной на каждый 30-минутный интервал диапазона
		slotStarts := created.SlotStarts()
		if err := uc.bookingRepo.CreateSlotClaims(txCtx, created.ID, created.VendorID, slotStarts); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Нарушение уникальности: транзакция откатывается целиком,
				// строка бронирования тоже не фиксируется
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create slot claims: %v", err)
			return fmt.Errorf("%w: failed to create slot claims: %v", ErrInternal, err)
		}

		response = &Response{
			ID:           created.ID,
			VendorID:     created.VendorID,
			BuyerID:      created.BuyerID,
			StartTimeUTC: created.StartTimeUTC,
			EndTimeUTC:   created.EndTimeUTC,
			Status:       string(created.Status),
			CreatedAt:    created.CreatedAt,
		}

		// Запись ledger в той же транзакции, что и основной side effect:
		// это закрывает окно между коммитом бронирования и фиксацией ключа
		if req.IdempotencyKey != "" {
			responseData, err := json.Marshal(response)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to marshal response: %v", err)
				return fmt.Errorf("%w: failed to marshal response: %v", ErrInternal, err)
			}

			record := &domain.IdempotencyRecord{
				KeyValue:     req.IdempotencyKey,
				Scope:        domain.ScopeBooking,
				RequestHash:  requestHash,
				ResponseData: responseData,
			}

			if err := uc.idempotencyRepo.Create(txCtx, record); err != nil {
				// Параллельный запрос с тем же ключом успел первым —
				// откатываемся и сходимся на его ответе ниже
				if errors.Is(err, idempotencyRepo.ErrDuplicateKey) {
					return err
				}
				uc.logger.Error("CreateBooking: failed to store idempotency record: %v", err)
				return fmt.Errorf("%w: failed to store idempotency record: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		// Гонка двух запросов с одним ключом: проигравший упирается либо в занятый
		// слот, либо в уже записанный ключ. В обоих случаях сходимся на ответе,
		// зафиксированном победителем
		if req.IdempotencyKey != "" &&
			(errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, idempotencyRepo.ErrDuplicateKey)) {
			replayed, replayErr := uc.replayFromLedger(ctx, req.IdempotencyKey, requestHash)
			if replayErr == nil && replayed != nil {
				uc.logger.Info("CreateBooking: converged on stored response for key=%q", req.IdempotencyKey)
				return replayed, nil
			}
		}

		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot conflict for vendor=%d, start=%s",
				req.VendorID, req.StartUTC.Format(domain.DateFormat+" 15:04"))
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, idempotencyRepo.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: failed to converge on stored response: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (%d slots)",
		response.ID, len(domain.SlotStartsInRange(response.StartTimeUTC, response.EndTimeUTC)))

	return response, nil
}

// replayFromLedger возвращает сохраненный ответ по ключу идемпотентности
// Возвращает idempotencyRepo.ErrRecordNotFound, если записи нет;
// ErrIdempotencyKeyReuse, если хэш запроса не совпадает с сохраненным
func (uc *UseCase) replayFromLedger(ctx context.Context, key, requestHash string) (*Response, error) {
	record, err := uc.idempotencyRepo.Get(ctx, key, domain.ScopeBooking)
	if err != nil {
		if errors.Is(err, idempotencyRepo.ErrRecordNotFound) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to check idempotency key=%q: %v", key, err)
		return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
	}

	if record.RequestHash != requestHash {
		uc.logger.Warn("CreateBooking: idempotency key=%q reused with different payload", key)
		return nil, ErrIdempotencyKeyReuse
	}

	var response Response
	if err := json.Unmarshal(record.ResponseData, &response); err != nil {
		uc.logger.Error("CreateBooking: failed to unmarshal stored response for key=%q: %v", key, err)
		return nil, fmt.Errorf("%w: failed to unmarshal stored response: %v", ErrInternal, err)
	}

	return &response, nil
}

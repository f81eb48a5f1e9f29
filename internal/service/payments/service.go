package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/payments/models"
)

// refPrefix префикс внешней ссылки платежа
const refPrefix = "pay_"

// refLength длина случайной части ссылки
const refLength = 16

// Service сервис для работы с платежами: инициализация и чтение статуса
// Переход платежа в success выполняет usecase process_webhook
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Initialize выдает платежную ссылку для pending-бронирования
// Ленивая идемпотентная инициализация: платеж создается при первом запросе,
// повторный запрос возвращает существующий платеж без изменений.
// Естественный ключ (booking_id) дедуплицирует сам — ledger здесь не нужен
func (s *Service) Initialize(ctx context.Context, bookingID int64) (*models.InitializeResponse, error) {
	s.logger.Info("InitializePayment: booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("InitializePayment: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("InitializePayment: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsPending() {
		s.logger.Warn("InitializePayment: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return nil, ErrBookingNotPending
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("InitializePayment: failed to get payment for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	if payment == nil {
		payment, err = s.createPayment(ctx, bookingID)
		if err != nil {
			return nil, err
		}
	}

	return &models.InitializeResponse{
		Ref:      payment.Ref,
		Status:   string(payment.Status),
		Amount:   domain.PaymentAmount,
		Currency: domain.PaymentCurrency,
	}, nil
}

// GetByRef получает статус платежа по внешней ссылке вместе с бронированием
func (s *Service) GetByRef(ctx context.Context, ref string) (*models.StatusResponse, error) {
	s.logger.Info("GetPayment: reference=%s", ref)

	payment, err := s.paymentRepo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetPayment: reference=%s not found", ref)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetPayment: repository error for reference=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		s.logger.Error("GetPayment: failed to get booking id=%d: %v", payment.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(payment, booking), nil
}

// createPayment создает платеж со свежей неугадываемой ссылкой
func (s *Service) createPayment(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	seedLog, err := json.Marshal(map[string]interface{}{
		"initialized_at": time.Now().UTC().Format(time.RFC3339),
		"amount":         domain.PaymentAmount,
		"currency":       domain.PaymentCurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal event log: %v", ErrInternal, err)
	}

	payment := &domain.Payment{
		BookingID:    bookingID,
		Ref:          generateRef(),
		Status:       domain.PaymentStatusPending,
		RawEventJSON: seedLog,
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		// Гонка двух инициализаций: проигравший возвращает платеж победителя
		if errors.Is(err, paymentRepo.ErrPaymentAlreadyExists) {
			existing, getErr := s.paymentRepo.GetByBookingID(ctx, bookingID)
			if getErr != nil {
				s.logger.Error("InitializePayment: failed to get existing payment for booking id=%d: %v", bookingID, getErr)
				return nil, fmt.Errorf("%w: failed to get existing payment: %v", ErrInternal, getErr)
			}
			s.logger.Info("InitializePayment: concurrent initialization, reusing payment ref=%s", existing.Ref)
			return existing, nil
		}
		s.logger.Error("InitializePayment: failed to create payment for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
	}

	s.logger.Info("InitializePayment: created payment ref=%s for booking id=%d", created.Ref, bookingID)
	return created, nil
}

// generateRef генерирует неугадываемую внешнюю ссылку платежа
func generateRef() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return refPrefix + raw[:refLength]
}

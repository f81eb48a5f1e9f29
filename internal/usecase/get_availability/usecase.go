package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	vendorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/vendor"
)

// UseCase use case получения свободных слотов на локальную дату
// Read-path без блокировок: это представление для UI, окончательная защита от
// двойного бронирования выполняется атомарно на write-path (create_booking)
type UseCase struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	tzService   TimezoneService
	timezone    string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	tzService TimezoneService,
	tzName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		tzService:   tzService,
		timezone:    tzName,
		logger:      logger,
	}
}

// Execute возвращает полную сетку слотов минус занятые, в хронологическом порядке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: vendor=%d, date=%s",
		req.VendorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование вендора
	if _, err := uc.vendorRepo.GetByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("GetAvailability: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailability: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	// 3. Полная сетка слотов на дату (детерминированная, 09:00–16:30 локального времени)
	grid := uc.tzService.GenerateDaySlots(req.Date)

	// 4. Занятые instants вендора в пределах сетки
	claimed, err := uc.bookingRepo.GetClaimedSlotStarts(ctx, req.VendorID, grid)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get claimed slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get claimed slots: %v", ErrInternal, err)
	}

	claimedSet := make(map[int64]struct{}, len(claimed))
	for _, start := range claimed {
		claimedSet[start.Unix()] = struct{}{}
	}

	// 5. Сетка минус занятые, порядок сетки сохраняется
	slots := make([]Slot, 0, len(grid))
	for _, start := range grid {
		if _, taken := claimedSet[start.Unix()]; taken {
			continue
		}
		slots = append(slots, Slot{
			StartUTC:   start,
			LocalLabel: uc.tzService.LocalClock(start),
		})
	}

	uc.logger.Info("GetAvailability: %d of %d slots available for vendor=%d, date=%s",
		len(slots), len(grid), req.VendorID, req.Date.Format(domain.DateFormat))

	return &Response{
		VendorID: req.VendorID,
		Date:     req.Date,
		Timezone: uc.timezone,
		Slots:    slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	tzService   TimezoneService
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	tzService TimezoneService,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		tzService:   tzService,
		logger:      logger,
	}
}

// GetByID получает бронирование с вендором и локальными метками времени
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	vendor, err := s.vendorRepo.GetByID(ctx, booking.VendorID)
	if err != nil {
		s.logger.Error("GetByID: failed to get vendor id=%d: %v", booking.VendorID, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get vendor: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(
		booking,
		vendor,
		s.tzService.LocalClock(booking.StartTimeUTC),
		s.tzService.LocalClock(booking.EndTimeUTC),
	), nil
}

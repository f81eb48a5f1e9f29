package vendors

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/vendors/models"
)

// Service сервис чтения вендоров
type Service struct {
	vendorRepo VendorRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса вендоров
func NewService(vendorRepo VendorRepository, logger Logger) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// List возвращает всех вендоров, отсортированных по имени
func (s *Service) List(ctx context.Context) (*models.ListResponse, error) {
	s.logger.Info("ListVendors: fetching vendors")

	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListVendors: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListVendors: fetched %d vendors", len(vendors))
	return models.FromDomainVendors(vendors), nil
}

package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// VendorResponse вендор в ответе списка
type VendorResponse struct {
	ID        int64
	Name      string
	Timezone  string
	CreatedAt time.Time
}

// ListResponse список вендоров
type ListResponse struct {
	Vendors []VendorResponse
	Total   int
}

// FromDomainVendors конвертирует доменные модели в ответ сервиса
func FromDomainVendors(vendors []*domain.Vendor) *ListResponse {
	result := make([]VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		result = append(result, VendorResponse{
			ID:        v.ID,
			Name:      v.Name,
			Timezone:  v.Timezone,
			CreatedAt: v.CreatedAt,
		})
	}
	return &ListResponse{
		Vendors: result,
		Total:   len(result),
	}
}

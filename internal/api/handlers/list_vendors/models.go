package list_vendors

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/vendors/models"
)

// VendorResponse вендор в HTTP ответе
type VendorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	CreatedAt string `json:"createdAt"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
	Total   int              `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ListResponse) *ListResponse {
	vendors := make([]VendorResponse, 0, len(resp.Vendors))
	for _, v := range resp.Vendors {
		vendors = append(vendors, VendorResponse{
			ID:        v.ID,
			Name:      v.Name,
			Timezone:  v.Timezone,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		})
	}
	return &ListResponse{
		Vendors: vendors,
		Total:   resp.Total,
	}
}

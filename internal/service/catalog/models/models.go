package models

import "github.com/m04kA/SMC-WashBooking/internal/domain"

// ServiceResponse услуга точки
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServiceListResponse список услуг точки
type ServiceListResponse struct {
	LocationID string             `json:"locationId"`
	Services   []*ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует услуги в ответ
func FromDomainServices(locationID string, services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		LocationID: locationID,
		Services:   make([]*ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, &ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}

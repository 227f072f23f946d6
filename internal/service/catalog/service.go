package catalog

import (
	"context"
	"errors"
	"fmt"

	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	locationRepo LocationRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(locationRepo LocationRepository, logger Logger) *Service {
	return &Service{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// ListServices возвращает активные услуги точки в порядке отображения
func (s *Service) ListServices(ctx context.Context, locationID string) (*models.ServiceListResponse, error) {
	if locationID == "" {
		return nil, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("ListServices: location=%s not found", locationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("ListServices: failed to get location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	services, err := s.locationRepo.ListServices(ctx, locationID, true)
	if err != nil {
		s.logger.Error("ListServices: failed to list services for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	return models.FromDomainServices(locationID, services), nil
}

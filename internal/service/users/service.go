package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-WashBooking/internal/integrations/identity"
)

// Service сервис профилей пользователей
type Service struct {
	repo     UserRepository
	identity IdentityClient
	logger   Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(repo UserRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		repo:     repo,
		identity: identityClient,
		logger:   logger,
	}
}

// GetOrCreate возвращает профиль, создавая его при первом обращении
// Имя и email берутся из identity provider. Если провайдер недоступен,
// профиль создается пустым. Создание выполняется одним условным INSERT,
// поэтому параллельные запросы не порождают дубликатов.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	existing, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("GetOrCreate: failed to get user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	profile := &domain.User{ID: userID}

	idUser, err := s.identity.GetUserWithGracefulDegradation(ctx, userID)
	switch {
	case err == nil:
		profile.DisplayName = idUser.DisplayName
		profile.Email = idUser.Email
	case errors.Is(err, identity.ErrUserNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, identity.ErrServiceDegraded):
		s.logger.Warn("GetOrCreate: creating empty profile for user=%s: %v", userID, err)
	default:
		return nil, fmt.Errorf("%w: failed to get identity: %v", ErrInternal, err)
	}

	created, err := s.repo.CreateIfNotExists(ctx, profile)
	if err != nil {
		s.logger.Error("GetOrCreate: failed to create user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to create user: %v", ErrInternal, err)
	}

	if !created {
		// Профиль создан параллельным запросом
		return s.repo.GetByID(ctx, userID)
	}

	s.logger.Info("GetOrCreate: created profile for user=%s", userID)
	return profile, nil
}

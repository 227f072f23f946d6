package blockedslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// Service сервис блокировки слотов менеджером
type Service struct {
	repo         BlockedSlotRepository
	locationRepo LocationRepository
	txManager    TransactionManager
	grid         *domain.Grid
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	repo BlockedSlotRepository,
	locationRepo LocationRepository,
	txManager TransactionManager,
	grid *domain.Grid,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		locationRepo: locationRepo,
		txManager:    txManager,
		grid:         grid,
		logger:       logger,
	}
}

// Toggle переключает блокировку слота: существующая снимается, отсутствующая создается
// Возвращает новое состояние. Повторный вызов возвращает слот в исходное состояние.
func (s *Service) Toggle(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error) {
	s.logger.Info("Toggle: location=%s, date=%s, slot=%s", locationID, date.Format(domain.DateFormat), slot)

	if err := s.validate(ctx, locationID, date); err != nil {
		return false, err
	}
	if !s.grid.Contains(slot) {
		s.logger.Warn("Toggle: slot=%s is not on the grid", slot)
		return false, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, slot)
	}

	var blocked bool
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.Exists(txCtx, locationID, date, slot)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}

		if exists {
			if err := s.repo.Delete(txCtx, locationID, date, slot); err != nil {
				return fmt.Errorf("%w: failed to unblock slot: %w", ErrInternal, err)
			}
			blocked = false
			return nil
		}

		if err := s.repo.Create(txCtx, &domain.BlockedSlot{
			LocationID: locationID,
			Date:       date,
			TimeSlot:   slot,
		}); err != nil {
			return fmt.Errorf("%w: failed to block slot: %w", ErrInternal, err)
		}
		blocked = true
		return nil
	})
	if err != nil {
		s.logger.Error("Toggle: location=%s, date=%s, slot=%s: %v", locationID, date.Format(domain.DateFormat), slot, err)
		return false, err
	}

	s.logger.Info("Toggle: slot %s on %s is now blocked=%t", slot, date.Format(domain.DateFormat), blocked)
	return blocked, nil
}

// List возвращает заблокированные слоты точки на дату
func (s *Service) List(ctx context.Context, locationID string, date time.Time) ([]types.TimeString, error) {
	if err := s.validate(ctx, locationID, date); err != nil {
		return nil, err
	}

	slots, err := s.repo.ListByDate(ctx, locationID, date)
	if err != nil {
		s.logger.Error("List: failed to get blocked slots for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	labels := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.TimeSlot)
	}
	return labels, nil
}

func (s *Service) validate(ctx context.Context, locationID string, date time.Time) error {
	if locationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	_, err := s.locationRepo.GetByID(ctx, locationID)
	if errors.Is(err, locationRepo.ErrLocationNotFound) {
		s.logger.Warn("BlockedSlots: location=%s not found", locationID)
		return ErrLocationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	return nil
}

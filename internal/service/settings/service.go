package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	settingsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-WashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashBooking/pkg/ptr"
)

// Service сервис настроек вместимости точек
// Resolve определяет число активных боксов: переопределение на дату,
// затем глобальная запись, затем значение по умолчанию из конфигурации.
type Service struct {
	settingsRepo SettingsRepository
	locationRepo LocationRepository
	defaultBays  int
	maxBays      int
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	locationRepo LocationRepository,
	defaultBays int,
	maxBays int,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		locationRepo: locationRepo,
		defaultBays:  defaultBays,
		maxBays:      maxBays,
		logger:       logger,
	}
}

// Resolve возвращает число активных боксов точки на дату
// Отсутствие записи не ошибка, а переход к следующему уровню;
// ошибки хранилища пробрасываются.
func (s *Service) Resolve(ctx context.Context, locationID string, date time.Time) (int, error) {
	daily, global, err := s.lookup(ctx, locationID, date)
	if err != nil {
		s.logger.Error("Resolve: failed to load settings for location=%s, date=%s: %v",
			locationID, date.Format(domain.DateFormat), err)
		return 0, err
	}

	switch {
	case daily != nil:
		return daily.ActiveBays, nil
	case global != nil:
		return global.ActiveBays, nil
	default:
		return s.defaultBays, nil
	}
}

// lookup читает дневную и глобальную запись
// Вне транзакции оба запроса выполняются параллельно. Внутри транзакции
// соединение одно, поэтому запросы идут последовательно.
func (s *Service) lookup(ctx context.Context, locationID string, date time.Time) (*domain.DailySettings, *domain.GlobalSettings, error) {
	var (
		daily  *domain.DailySettings
		global *domain.GlobalSettings
	)

	getDaily := func(ctx context.Context) error {
		d, err := s.settingsRepo.GetDaily(ctx, locationID, date)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return fmt.Errorf("%w: failed to get daily settings: %w", ErrInternal, err)
		}
		daily = d
		return nil
	}
	getGlobal := func(ctx context.Context) error {
		g, err := s.settingsRepo.GetGlobal(ctx, locationID)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return fmt.Errorf("%w: failed to get global settings: %w", ErrInternal, err)
		}
		global = g
		return nil
	}

	if dbmetrics.IsInTransaction(ctx) {
		if err := getDaily(ctx); err != nil {
			return nil, nil, err
		}
		if daily != nil {
			return daily, nil, nil
		}
		if err := getGlobal(ctx); err != nil {
			return nil, nil, err
		}
		return nil, global, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return getDaily(gctx) })
	g.Go(func() error { return getGlobal(gctx) })
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return daily, global, nil
}

// Get возвращает настройки точки для панели менеджера
func (s *Service) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for location=%s", req.LocationID)

	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	resp := &models.SettingsResponse{
		LocationID:  req.LocationID,
		DefaultBays: s.defaultBays,
	}

	if req.Date == nil {
		global, err := s.settingsRepo.GetGlobal(ctx, req.LocationID)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: failed to get global settings for location=%s: %v", req.LocationID, err)
			return nil, fmt.Errorf("%w: failed to get global settings: %v", ErrInternal, err)
		}
		resp.EffectiveBays = s.defaultBays
		if global != nil {
			resp.GlobalActiveBays = ptr.Ptr(global.ActiveBays)
			resp.EffectiveBays = global.ActiveBays
		}
		return resp, nil
	}

	daily, global, err := s.lookup(ctx, req.LocationID, *req.Date)
	if err != nil {
		s.logger.Error("Get: failed to load settings for location=%s: %v", req.LocationID, err)
		return nil, err
	}

	resp.Date = req.Date
	resp.EffectiveBays = s.defaultBays
	if global != nil {
		resp.GlobalActiveBays = ptr.Ptr(global.ActiveBays)
		resp.EffectiveBays = global.ActiveBays
	}
	if daily != nil {
		resp.DailyActiveBays = ptr.Ptr(daily.ActiveBays)
		resp.EffectiveBays = daily.ActiveBays
	}

	return resp, nil
}

// SetGlobal задает глобальную вместимость точки
func (s *Service) SetGlobal(ctx context.Context, req *models.SetGlobalRequest) (*models.SettingsResponse, error) {
	s.logger.Info("SetGlobal: location=%s, activeBays=%d", req.LocationID, req.ActiveBays)

	if err := s.validateBays(req.ActiveBays); err != nil {
		s.logger.Warn("SetGlobal: validation failed: %v", err)
		return nil, err
	}
	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	saved, err := s.settingsRepo.UpsertGlobal(ctx, &domain.GlobalSettings{
		LocationID: req.LocationID,
		ActiveBays: req.ActiveBays,
	})
	if err != nil {
		s.logger.Error("SetGlobal: failed to save settings for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to save global settings: %v", ErrInternal, err)
	}

	return &models.SettingsResponse{
		LocationID:       saved.LocationID,
		GlobalActiveBays: ptr.Ptr(saved.ActiveBays),
		DefaultBays:      s.defaultBays,
		EffectiveBays:    saved.ActiveBays,
	}, nil
}

// SetDaily задает вместимость точки на дату
func (s *Service) SetDaily(ctx context.Context, req *models.SetDailyRequest) (*models.SettingsResponse, error) {
	s.logger.Info("SetDaily: location=%s, date=%s, activeBays=%d",
		req.LocationID, req.Date.Format(domain.DateFormat), req.ActiveBays)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := s.validateBays(req.ActiveBays); err != nil {
		s.logger.Warn("SetDaily: validation failed: %v", err)
		return nil, err
	}
	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	saved, err := s.settingsRepo.UpsertDaily(ctx, &domain.DailySettings{
		LocationID: req.LocationID,
		Date:       req.Date,
		ActiveBays: req.ActiveBays,
	})
	if err != nil {
		s.logger.Error("SetDaily: failed to save settings for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to save daily settings: %v", ErrInternal, err)
	}

	return &models.SettingsResponse{
		LocationID:      saved.LocationID,
		Date:            ptr.Ptr(saved.Date),
		DailyActiveBays: ptr.Ptr(saved.ActiveBays),
		DefaultBays:     s.defaultBays,
		EffectiveBays:   saved.ActiveBays,
	}, nil
}

func (s *Service) validateBays(bays int) error {
	if bays < domain.MinActiveBays || bays > s.maxBays {
		return fmt.Errorf("%w: activeBays must be between %d and %d", ErrInvalidInput, domain.MinActiveBays, s.maxBays)
	}
	return nil
}

func (s *Service) ensureLocation(ctx context.Context, locationID string) error {
	if locationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	_, err := s.locationRepo.GetByID(ctx, locationID)
	if errors.Is(err, locationRepo.ErrLocationNotFound) {
		s.logger.Warn("Settings: location=%s not found", locationID)
		return ErrLocationNotFound
	}
	if err != nil {
		s.logger.Error("Settings: failed to get location=%s: %v", locationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	return nil
}

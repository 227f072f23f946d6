package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// UseCase use case для получения доступных слотов точки
type UseCase struct {
	locationRepo LocationRepository
	bookingRepo  BookingRepository
	blockedRepo  BlockedSlotRepository
	settings     SettingsResolver
	grid         *domain.Grid
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	bookingRepo BookingRepository,
	blockedRepo BlockedSlotRepository,
	settings SettingsResolver,
	grid *domain.Grid,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		settings:     settings,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Только чтение: повторный вызов при неизменном хранилище дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: location=%s, date=%s", req.LocationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}
	req.Date = time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	resp := &Response{
		Date:       req.Date,
		LocationID: req.LocationID,
		Slots:      []types.TimeString{},
	}

	// 2. Прошедшая дата: пустой список без обращения к хранилищу
	now := uc.timeProvider.Now()
	today := uc.grid.DateOf(now)
	if req.Date.Before(today) {
		uc.logger.Info("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Проверяем точку
	if _, err := uc.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailability: location=%s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Вместимость на дату
	activeBays, err := uc.settings.Resolve(ctx, req.LocationID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve active bays: %v", ErrInternal, err)
	}
	resp.ActiveBays = activeBays

	// 5. Бронирования дня и занятость
	dayStart, dayEnd := uc.grid.DayBounds(req.Date)
	bookings, err := uc.bookingRepo.GetByLocationInRange(ctx, domain.LocationBookingsFilter{
		LocationID: req.LocationID,
		From:       dayStart,
		To:         dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// Выключенные услуги тоже нужны: по ним считаются старые бронирования
	services, err := uc.locationRepo.ListServices(ctx, req.LocationID, false)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	occupancy, skipped := domain.ComputeOccupancy(uc.grid, bookings, domain.ServiceDurations(services))
	for _, b := range skipped {
		uc.logger.Warn("GetAvailability: booking id=%s has unknown service=%s, skipped", b.ID, b.ServiceID)
	}

	// 6. Заблокированные слоты
	blocked, err := uc.blockedRepo.ListByDate(ctx, req.LocationID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 7. Фильтрация
	slots := filterAvailable(uc.grid.Generate(), occupancy, blockedSet(blocked), activeBays)
	if req.Date.Equal(today) {
		slots = dropStarted(uc.grid, req.Date, slots, now)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailability: %d slots available for location=%s, date=%s",
		len(slots), req.LocationID, req.Date.Format(domain.DateFormat))

	return resp, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/pkg/ptr"
	"github.com/m04kA/SMC-WashBooking/pkg/txmanager"
)

const rewardsWarningMessage = "booking created, loyalty point was not credited"

// UseCase use case для создания оплаченного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	locationRepo LocationRepository
	blockedRepo  BlockedSlotRepository
	settings     SettingsResolver
	users        UserService
	rewards      RewardsService
	txManager    TransactionManager
	grid         *domain.Grid
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	locationRepo LocationRepository,
	blockedRepo BlockedSlotRepository,
	settings SettingsResolver,
	users UserService,
	rewards RewardsService,
	txManager TransactionManager,
	grid *domain.Grid,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		blockedRepo:  blockedRepo,
		settings:     settings,
		users:        users,
		rewards:      rewards,
		txManager:    txManager,
		grid:         grid,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка вместимости, выбор бокса и запись выполняются в одной сериализуемой
// транзакции. Балл лояльности начисляется после фиксации: ошибка начисления
// не отменяет бронирование и возвращается как предупреждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, location=%s, service=%s, date=%s, time=%s",
		req.UserID, req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Переводим метку в момент UTC
	instant, err := validateSlot(uc.grid, req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}
	date := uc.grid.DateOf(instant)

	// 3. Проверяем точку и услугу
	if _, err := uc.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateBooking: location=%s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	service, err := uc.locationRepo.GetService(ctx, req.LocationID, req.ServiceID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service=%s not found at location=%s", req.ServiceID, req.LocationID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service=%s is disabled", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Вместимость на дату
	activeBays, err := uc.settings.Resolve(ctx, req.LocationID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve active bays: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 5. Проверка вместимости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем точку: параллельные бронирования этой точки выстраиваются в очередь
		if _, err := uc.locationRepo.GetByID(txCtx, req.LocationID); err != nil {
			return fmt.Errorf("%w: failed to lock location: %w", ErrInternal, err)
		}

		// 5.2. Слот, закрытый менеджером, не бронируется
		blocked, err := uc.blockedRepo.Exists(txCtx, req.LocationID, date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to check blocked slot: %w", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("CreateBooking: slot %s %s is blocked at location=%s",
				date.Format(domain.DateFormat), req.StartTime, req.LocationID)
			return ErrSlotNotAvailable
		}

		// 5.3. Бронирования дня с блокировкой (FOR UPDATE)
		dayStart, dayEnd := uc.grid.DayBounds(date)
		bookings, err := uc.bookingRepo.GetByLocationInRange(txCtx, domain.LocationBookingsFilter{
			LocationID: req.LocationID,
			From:       dayStart,
			To:         dayEnd,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		services, err := uc.locationRepo.ListServices(txCtx, req.LocationID, false)
		if err != nil {
			return fmt.Errorf("%w: failed to list services: %w", ErrInternal, err)
		}

		// 5.4. Проверяем вместимость и выбираем бокс
		bayID, err := domain.AssignBay(uc.grid, bookings, domain.ServiceDurations(services),
			instant, service.DurationMinutes, activeBays)
		if err != nil {
			uc.logger.Warn("CreateBooking: slot %s %s is full, activeBays=%d",
				date.Format(domain.DateFormat), req.StartTime, activeBays)
			return ErrSlotNotAvailable
		}

		// 5.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:              uuid.NewString(),
			LocationID:      req.LocationID,
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			StartTime:       instant,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPaid,
			BayID:           bayID,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBay) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.metrics.IncBookingConflict()
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated(string(domain.StatusPaid))
	uc.logger.Info("CreateBooking: created booking id=%s, bay=%d", result.ID, result.BayID)

	resp := &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		LocationID:      result.LocationID,
		ServiceID:       result.ServiceID,
		Date:            date,
		StartTime:       req.StartTime,
		StartInstant:    result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		BayID:           result.BayID,
		CreatedAt:       result.CreatedAt,
	}

	// 6. Профиль пользователя: создается при первом бронировании
	if _, err := uc.users.GetOrCreate(ctx, req.UserID); err != nil {
		uc.logger.Warn("CreateBooking: failed to ensure profile for user=%s: %v", req.UserID, err)
	}

	// 7. Начисляем балл лояльности
	rewards, err := uc.rewards.AccruePoint(ctx, req.UserID, req.LocationID)
	if err != nil {
		uc.metrics.IncRewardAccrualFailure()
		uc.logger.Error("CreateBooking: booking id=%s created, but rewards accrual failed: %v", result.ID, err)
		resp.RewardsWarning = ptr.Ptr(rewardsWarningMessage)
		return resp, nil
	}
	resp.Rewards = rewards

	return resp, nil
}

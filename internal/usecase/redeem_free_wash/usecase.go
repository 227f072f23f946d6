package redeem_free_wash

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	rewardsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/rewards"
	"github.com/m04kA/SMC-WashBooking/pkg/txmanager"
)

// UseCase use case для бронирования за бесплатную мойку
type UseCase struct {
	bookingRepo  BookingRepository
	locationRepo LocationRepository
	blockedRepo  BlockedSlotRepository
	rewardsRepo  RewardsRepository
	settings     SettingsResolver
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
	rewardsRepo RewardsRepository,
	settings SettingsResolver,
	txManager TransactionManager,
	grid *domain.Grid,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		blockedRepo:  blockedRepo,
		rewardsRepo:  rewardsRepo,
		settings:     settings,
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

// Execute выполняет use case
// Списание бесплатной мойки и создание бронирования происходят в одной
// транзакции: либо оба изменения, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RedeemFreeWash: user=%s, location=%s, service=%s, date=%s, time=%s",
		req.UserID, req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RedeemFreeWash: validation failed: %v", err)
		return nil, err
	}

	instant, err := slotInstant(uc.grid, req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("RedeemFreeWash: slot validation failed: %v", err)
		return nil, err
	}
	date := uc.grid.DateOf(instant)

	service, err := uc.locationRepo.GetService(ctx, req.LocationID, req.ServiceID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RedeemFreeWash: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}

	activeBays, err := uc.settings.Resolve(ctx, req.LocationID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve active bays: %v", ErrInternal, err)
	}

	var (
		result  *domain.Booking
		balance *domain.Rewards
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.locationRepo.GetByID(txCtx, req.LocationID); err != nil {
			if errors.Is(err, locationRepo.ErrLocationNotFound) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: failed to lock location: %w", ErrInternal, err)
		}

		// Баланс читается с блокировкой строки
		rewards, err := uc.rewardsRepo.Get(txCtx, req.UserID, req.LocationID)
		if errors.Is(err, rewardsRepo.ErrRewardsNotFound) {
			return ErrNoRewardAvailable
		}
		if err != nil {
			return fmt.Errorf("%w: failed to get rewards: %w", ErrInternal, err)
		}
		if !rewards.HasFreeWash() {
			return ErrNoRewardAvailable
		}

		blocked, err := uc.blockedRepo.Exists(txCtx, req.LocationID, date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to check blocked slot: %w", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("RedeemFreeWash: slot %s %s is blocked at location=%s",
				date.Format(domain.DateFormat), req.StartTime, req.LocationID)
			return ErrSlotNotAvailable
		}

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

		bayID, err := domain.AssignBay(uc.grid, bookings, domain.ServiceDurations(services),
			instant, service.DurationMinutes, activeBays)
		if err != nil {
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:              uuid.NewString(),
			LocationID:      req.LocationID,
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			StartTime:       instant,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusFree,
			BayID:           bayID,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBay) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		if err := rewards.DebitFreeWash(); err != nil {
			return ErrNoRewardAvailable
		}
		saved, err := uc.rewardsRepo.Upsert(txCtx, rewards)
		if err != nil {
			return fmt.Errorf("%w: failed to save rewards: %w", ErrInternal, err)
		}

		result = created
		balance = saved
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNoRewardAvailable):
			uc.logger.Warn("RedeemFreeWash: user=%s has no free wash at location=%s", req.UserID, req.LocationID)
			return nil, ErrNoRewardAvailable
		case errors.Is(err, ErrLocationNotFound):
			uc.logger.Warn("RedeemFreeWash: location=%s not found", req.LocationID)
			return nil, ErrLocationNotFound
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrRetriesExhausted):
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("RedeemFreeWash: slot %s %s is full", date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RedeemFreeWash: transaction failed: %v", err)
			return nil, err
		default:
			uc.logger.Error("RedeemFreeWash: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncBookingCreated(string(domain.StatusFree))
	uc.logger.Info("RedeemFreeWash: created booking id=%s, bay=%d, freeWashes left=%d",
		result.ID, result.BayID, balance.FreeWashes)

	return &Response{
		ID:                  result.ID,
		UserID:              result.UserID,
		LocationID:          result.LocationID,
		ServiceID:           result.ServiceID,
		Date:                date,
		StartTime:           req.StartTime,
		StartInstant:        result.StartTime,
		DurationMinutes:     result.DurationMinutes,
		Status:              string(result.Status),
		BayID:               result.BayID,
		CreatedAt:           result.CreatedAt,
		RemainingFreeWashes: balance.FreeWashes,
		LoyaltyPoints:       balance.LoyaltyPoints,
	}, nil
}

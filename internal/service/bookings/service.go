package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-WashBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	locationRepo LocationRepository
	grid         *domain.Grid
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	locationRepo LocationRepository,
	grid *domain.Grid,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		grid:         grid,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, менеджер видит любые
func (s *Service) GetByID(ctx context.Context, id string, userID string, role string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && role != domain.RoleManager {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(s.grid, booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == *status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(s.grid, bookings), nil
}

// GetLocationBookings получает бронирования точки за диапазон дат
// Диапазон включает обе даты и не может превышать MaxBookingsRange дней
func (s *Service) GetLocationBookings(ctx context.Context, req *models.GetLocationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetLocationBookings: fetching bookings for location=%s, period=%s to %s",
		req.LocationID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidTimeRange)
	}
	if days := int(req.To.Sub(req.From).Hours()/24) + 1; days > domain.MaxBookingsRange {
		return nil, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidTimeRange, days, domain.MaxBookingsRange)
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	from, _ := s.grid.DayBounds(req.From)
	_, to := s.grid.DayBounds(req.To)

	bookings, err := s.bookingRepo.GetByLocationInRange(ctx, domain.LocationBookingsFilter{
		LocationID: req.LocationID,
		From:       from,
		To:         to,
		Status:     status,
	})
	if err != nil {
		s.logger.Error("GetLocationBookings: repository error for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: GetLocationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLocationBookings: fetched %d bookings for location=%s", len(bookings), req.LocationID)
	return models.FromDomainBookingList(s.grid, bookings), nil
}

// Summary возвращает сводку бронирований точки за день
func (s *Service) Summary(ctx context.Context, locationID string, date time.Time) (*models.BookingsSummaryResponse, error) {
	s.logger.Info("Summary: location=%s, date=%s", locationID, date.Format(domain.DateFormat))

	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	from, to := s.grid.DayBounds(date)
	bookings, err := s.bookingRepo.GetByLocationInRange(ctx, domain.LocationBookingsFilter{
		LocationID: locationID,
		From:       from,
		To:         to,
	})
	if err != nil {
		s.logger.Error("Summary: repository error for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: Summary - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingsSummaryResponse{
		LocationID: locationID,
		Date:       date.Format(domain.DateFormat),
		Total:      len(bookings),
		ByService:  make(map[string]int),
		ByBay:      make(map[int]int),
	}
	for _, b := range bookings {
		if b.IsFree() {
			resp.Free++
		} else {
			resp.Paid++
		}
		resp.ByService[b.ServiceID]++
		resp.ByBay[b.BayID]++
	}

	return resp, nil
}

// Вспомогательные методы

func (s *Service) ensureLocation(ctx context.Context, locationID string) error {
	if locationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}
	_, err := s.locationRepo.GetByID(ctx, locationID)
	if errors.Is(err, locationRepo.ErrLocationNotFound) {
		s.logger.Warn("ensureLocation: location=%s not found", locationID)
		return ErrLocationNotFound
	}
	if err != nil {
		s.logger.Error("ensureLocation: failed to get location=%s: %v", locationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	return nil
}

func parseStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := models.ToDomainBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}

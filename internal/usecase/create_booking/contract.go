package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByLocationInRange(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
}

// LocationRepository интерфейс репозитория точек и услуг
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	GetService(ctx context.Context, locationID, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, locationID string, activeOnly bool) ([]*domain.Service, error)
}

// BlockedSlotRepository интерфейс репозитория заблокированных слотов
type BlockedSlotRepository interface {
	Exists(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error)
}

// SettingsResolver определяет число активных боксов точки на дату
type SettingsResolver interface {
	Resolve(ctx context.Context, locationID string, date time.Time) (int, error)
}

// UserService сервис профилей пользователей
type UserService interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.User, error)
}

// RewardsService сервис баллов лояльности
type RewardsService interface {
	AccruePoint(ctx context.Context, userID, locationID string) (*domain.Rewards, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated(status string)
	IncBookingConflict()
	IncRewardAccrualFailure()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

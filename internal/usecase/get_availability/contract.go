package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// LocationRepository интерфейс репозитория точек и услуг
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	ListServices(ctx context.Context, locationID string, activeOnly bool) ([]*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByLocationInRange(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория заблокированных слотов
type BlockedSlotRepository interface {
	ListByDate(ctx context.Context, locationID string, date time.Time) ([]*domain.BlockedSlot, error)
}

// SettingsResolver определяет число активных боксов точки на дату
type SettingsResolver interface {
	Resolve(ctx context.Context, locationID string, date time.Time) (int, error)
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

package bookings

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.Booking, error)
	GetByLocationInRange(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
}

// LocationRepository интерфейс репозитория точек
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

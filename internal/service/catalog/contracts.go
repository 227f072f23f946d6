package catalog

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// LocationRepository интерфейс репозитория точек и услуг
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	ListServices(ctx context.Context, locationID string, activeOnly bool) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

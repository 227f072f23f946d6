package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек вместимости
type SettingsRepository interface {
	GetGlobal(ctx context.Context, locationID string) (*domain.GlobalSettings, error)
	GetDaily(ctx context.Context, locationID string, date time.Time) (*domain.DailySettings, error)
	UpsertGlobal(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error)
	UpsertDaily(ctx context.Context, settings *domain.DailySettings) (*domain.DailySettings, error)
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

package blockedslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// BlockedSlotRepository интерфейс репозитория заблокированных слотов
type BlockedSlotRepository interface {
	ListByDate(ctx context.Context, locationID string, date time.Time) ([]*domain.BlockedSlot, error)
	Exists(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error)
	Create(ctx context.Context, slot *domain.BlockedSlot) error
	Delete(ctx context.Context, locationID string, date time.Time, slot types.TimeString) error
}

// LocationRepository интерфейс репозитория точек
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

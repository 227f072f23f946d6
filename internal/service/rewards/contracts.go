package rewards

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// RewardsRepository интерфейс репозитория балансов лояльности
type RewardsRepository interface {
	Get(ctx context.Context, userID, locationID string) (*domain.Rewards, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Rewards, error)
	Upsert(ctx context.Context, rw *domain.Rewards) (*domain.Rewards, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

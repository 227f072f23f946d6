package get_user_rewards

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

type RewardsService interface {
	Get(ctx context.Context, userID, locationID string) (*domain.Rewards, error)
	List(ctx context.Context, userID string) ([]*domain.Rewards, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

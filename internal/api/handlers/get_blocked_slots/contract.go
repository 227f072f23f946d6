package get_blocked_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type BlockedSlotService interface {
	List(ctx context.Context, locationID string, date time.Time) ([]types.TimeString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

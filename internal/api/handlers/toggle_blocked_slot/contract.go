package toggle_blocked_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

type BlockedSlotService interface {
	Toggle(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

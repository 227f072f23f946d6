package get_bookings_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/service/bookings/models"
)

type BookingService interface {
	Summary(ctx context.Context, locationID string, date time.Time) (*models.BookingsSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

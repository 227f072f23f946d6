package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if req.LocationID == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlot проверяет, что метка лежит на сетке и слот еще не начался
// Возвращает момент начала в UTC
func validateSlot(grid *domain.Grid, req *Request, now time.Time) (time.Time, error) {
	if !grid.Contains(req.StartTime) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.StartTime)
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	instant := grid.Instant(date, req.StartTime)
	if !instant.After(now) {
		return time.Time{}, fmt.Errorf("%w: slot %s %s has already started",
			ErrInvalidDate, date.Format(domain.DateFormat), req.StartTime)
	}

	return instant, nil
}

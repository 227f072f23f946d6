package redeem_free_wash

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	switch {
	case req.UserID == "":
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	case req.LocationID == "":
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	case req.ServiceID == "":
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	case req.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	return nil
}

// slotInstant переводит дату и метку в момент UTC и проверяет, что слот впереди
func slotInstant(grid *domain.Grid, req *Request, now time.Time) (time.Time, error) {
	if !grid.Contains(req.StartTime) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.StartTime)
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	instant := grid.Instant(date, req.StartTime)
	if !instant.After(now) {
		return time.Time{}, fmt.Errorf("%w: slot has already started", ErrInvalidDate)
	}

	return instant, nil
}

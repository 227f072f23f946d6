package get_location_bookings

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/bookings/models"
)

var errMissingRange = errors.New("either date or startDate and endDate are required")

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, startDate/endDate задают диапазон включительно
func ToServiceRequest(locationID, dateStr, startStr, endStr, statusStr string) (*models.GetLocationBookingsRequest, error) {
	req := &models.GetLocationBookingsRequest{LocationID: locationID}

	switch {
	case dateStr != "":
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.From, req.To = date, date

	case startStr != "" && endStr != "":
		from, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			return nil, err
		}
		to, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			return nil, err
		}
		req.From, req.To = from, to

	default:
		return nil, errMissingRange
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}

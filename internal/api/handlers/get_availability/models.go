package get_availability

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-WashBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date       string   `json:"date"`
	LocationID string   `json:"locationId"`
	ActiveBays int      `json:"activeBays"`
	Slots      []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailabilityResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		LocationID: resp.LocationID,
		ActiveBays: resp.ActiveBays,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(locationID, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		LocationID: locationID,
		Date:       date,
	}, nil
}

package get_blocked_slots

import "github.com/m04kA/SMC-WashBooking/pkg/types"

// BlockedSlotsResponse HTTP response model
type BlockedSlotsResponse struct {
	LocationID string   `json:"locationId"`
	Date       string   `json:"date"`
	Slots      []string `json:"slots"`
}

// FromServiceResponse конвертирует метки в HTTP response
func FromServiceResponse(locationID, date string, labels []types.TimeString) *BlockedSlotsResponse {
	slots := make([]string, len(labels))
	for i, l := range labels {
		slots[i] = l.String()
	}
	return &BlockedSlotsResponse{
		LocationID: locationID,
		Date:       date,
		Slots:      slots,
	}
}

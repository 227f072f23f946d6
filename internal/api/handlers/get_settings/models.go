package get_settings

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings/models"
)

// SettingsResponse HTTP response model
type SettingsResponse struct {
	LocationID       string  `json:"locationId"`
	GlobalActiveBays *int    `json:"globalActiveBays"`
	Date             *string `json:"date,omitempty"`
	DailyActiveBays  *int    `json:"dailyActiveBays,omitempty"`
	DefaultBays      int     `json:"defaultBays"`
	EffectiveBays    int     `json:"effectiveBays"`
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(locationID, dateStr string) (*models.GetSettingsRequest, error) {
	req := &models.GetSettingsRequest{LocationID: locationID}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsResponse) *SettingsResponse {
	out := &SettingsResponse{
		LocationID:       resp.LocationID,
		GlobalActiveBays: resp.GlobalActiveBays,
		DailyActiveBays:  resp.DailyActiveBays,
		DefaultBays:      resp.DefaultBays,
		EffectiveBays:    resp.EffectiveBays,
	}
	if resp.Date != nil {
		d := resp.Date.Format(domain.DateFormat)
		out.Date = &d
	}
	return out
}

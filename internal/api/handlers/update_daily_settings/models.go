package update_daily_settings

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings/models"
)

// UpdateDailySettingsRequest HTTP request model
type UpdateDailySettingsRequest struct {
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
	ActiveBays int    `json:"activeBays"`
}

// DailySettingsResponse HTTP response model
type DailySettingsResponse struct {
	LocationID  string `json:"locationId"`
	Date        string `json:"date"`
	ActiveBays  int    `json:"activeBays"`
	DefaultBays int    `json:"defaultBays"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateDailySettingsRequest) ToServiceRequest() (*models.SetDailyRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.SetDailyRequest{
		LocationID: r.LocationID,
		Date:       date,
		ActiveBays: r.ActiveBays,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsResponse) *DailySettingsResponse {
	out := &DailySettingsResponse{
		LocationID:  resp.LocationID,
		ActiveBays:  resp.EffectiveBays,
		DefaultBays: resp.DefaultBays,
	}
	if resp.Date != nil {
		out.Date = resp.Date.Format(domain.DateFormat)
	}
	return out
}

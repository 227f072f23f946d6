package update_settings

import "github.com/m04kA/SMC-WashBooking/internal/service/settings/models"

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	LocationID string `json:"locationId"`
	ActiveBays int    `json:"activeBays"`
}

// SettingsResponse HTTP response model
type SettingsResponse struct {
	LocationID  string `json:"locationId"`
	ActiveBays  int    `json:"activeBays"`
	DefaultBays int    `json:"defaultBays"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.SetGlobalRequest {
	return &models.SetGlobalRequest{
		LocationID: r.LocationID,
		ActiveBays: r.ActiveBays,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsResponse) *SettingsResponse {
	return &SettingsResponse{
		LocationID:  resp.LocationID,
		ActiveBays:  resp.EffectiveBays,
		DefaultBays: resp.DefaultBays,
	}
}

package toggle_blocked_slot

// ToggleRequest HTTP request model
type ToggleRequest struct {
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"` // "10:00"
}

// ToggleResponse HTTP response model
// Blocked - состояние слота после переключения
type ToggleResponse struct {
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"`
	Blocked    bool   `json:"blocked"`
}

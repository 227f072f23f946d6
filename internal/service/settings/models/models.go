package models

import "time"

// GetSettingsRequest запрос настроек точки
// Date опциональна: без неё возвращается только глобальное значение
type GetSettingsRequest struct {
	LocationID string
	Date       *time.Time
}

// SetGlobalRequest запрос на изменение глобальной вместимости
type SetGlobalRequest struct {
	LocationID string
	ActiveBays int
}

// SetDailyRequest запрос на изменение вместимости на дату
type SetDailyRequest struct {
	LocationID string
	Date       time.Time
	ActiveBays int
}

// SettingsResponse настройки точки
type SettingsResponse struct {
	LocationID       string
	GlobalActiveBays *int       // nil, если глобальная запись не задана
	Date             *time.Time // дата, для которой посчитано EffectiveBays
	DailyActiveBays  *int       // nil, если на дату нет переопределения
	DefaultBays      int
	EffectiveBays    int
}

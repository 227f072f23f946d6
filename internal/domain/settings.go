package domain

import "time"

// GlobalSettings вместимость точки по умолчанию
type GlobalSettings struct {
	LocationID string
	ActiveBays int
	UpdatedAt  time.Time
}

// DailySettings вместимость точки на конкретную дату
// Полностью перекрывает GlobalSettings на эту дату
type DailySettings struct {
	LocationID string
	Date       time.Time // дата в опорной зоне, время 00:00 UTC
	ActiveBays int
	UpdatedAt  time.Time
}

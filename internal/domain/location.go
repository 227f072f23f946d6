package domain

import "time"

// Location точка мойки
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Service услуга точки (тип мойки)
type Service struct {
	ID              string
	LocationID      string
	Name            string
	DurationMinutes int
	IsActive        bool
	DisplayOrder    int
}

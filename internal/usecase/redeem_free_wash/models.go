package redeem_free_wash

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// Request модель запроса на бронирование за бесплатную мойку
type Request struct {
	UserID     string
	LocationID string
	ServiceID  string
	Date       time.Time        // Дата в опорной зоне (без времени)
	StartTime  types.TimeString // Метка слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  string
	UserID              string
	LocationID          string
	ServiceID           string
	Date                time.Time
	StartTime           types.TimeString
	StartInstant        time.Time // UTC
	DurationMinutes     int
	Status              string
	BayID               int
	CreatedAt           time.Time
	RemainingFreeWashes int
	LoyaltyPoints       int
}

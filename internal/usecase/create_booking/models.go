package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// Request модель запроса на создание бронирования
// Оплата подтверждается вызывающей стороной до вызова
type Request struct {
	UserID     string           // ID пользователя из токена
	LocationID string           // ID точки
	ServiceID  string           // ID услуги
	Date       time.Time        // Дата в опорной зоне (без времени)
	StartTime  types.TimeString // Метка слота, например "10:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	UserID          string
	LocationID      string
	ServiceID       string
	Date            time.Time
	StartTime       types.TimeString
	StartInstant    time.Time // UTC
	DurationMinutes int
	Status          string
	BayID           int
	CreatedAt       time.Time

	// Rewards баланс после начисления, nil если начислить не удалось
	Rewards *domain.Rewards
	// RewardsWarning заполняется, когда бронирование создано, а балл не начислен
	RewardsWarning *string
}

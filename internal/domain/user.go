package domain

import "time"

// User профиль клиента, создается лениво при первом бронировании
type User struct {
	ID          string // subject из identity provider
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	return s == StatusPaid || s == StatusFree
}

// Booking бронирование бокса мойки
// Неизменяемо после создания: нет ни отмены, ни переноса
type Booking struct {
	ID         string
	LocationID string
	UserID     string
	ServiceID  string
	StartTime  time.Time // UTC
	// DurationMinutes длительность услуги на момент бронирования
	// 0 для записей без снимка, тогда берется текущая длительность услуги
	DurationMinutes int
	Status          BookingStatus
	BayID           int // 1..activeBays
	CreatedAt       time.Time
}

// EndTime возвращает момент окончания для известной длительности
func (b *Booking) EndTime(durationMinutes int) time.Time {
	return b.StartTime.Add(time.Duration(durationMinutes) * time.Minute)
}

// IsFree returns true if the booking was paid with a free wash
func (b *Booking) IsFree() bool {
	return b.Status == StatusFree
}

// LocationBookingsFilter фильтр бронирований точки по интервалу начала [From, To)
type LocationBookingsFilter struct {
	LocationID string
	From       time.Time
	To         time.Time
	Status     *BookingStatus
}

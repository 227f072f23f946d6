package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetLocationBookingsRequest запрос на получение бронирований точки
// From и To включительно, даты опорной зоны
type GetLocationBookingsRequest struct {
	LocationID string    `json:"locationId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Status     *string   `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string    `json:"id"`
	LocationID      string    `json:"locationId"`
	UserID          string    `json:"userId"`
	ServiceID       string    `json:"serviceId"`
	Date            string    `json:"date"`      // "2025-03-10"
	TimeSlot        string    `json:"timeSlot"`  // "09:00"
	StartTime       time.Time `json:"startTime"` // UTC, ISO 8601
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Status          string    `json:"status"`
	BayID           int       `json:"bayId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingsSummaryResponse сводка бронирований точки за день
type BookingsSummaryResponse struct {
	LocationID string         `json:"locationId"`
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	Paid       int            `json:"paid"`
	Free       int            `json:"free"`
	ByService  map[string]int `json:"byService"`
	ByBay      map[int]int    `json:"byBay"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Дата и метка слота считаются в опорной зоне сетки
func FromDomainBooking(grid *domain.Grid, b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		LocationID:      b.LocationID,
		UserID:          b.UserID,
		ServiceID:       b.ServiceID,
		Date:            grid.DateOf(b.StartTime).Format(domain.DateFormat),
		TimeSlot:        grid.TimeOf(b.StartTime).String(),
		StartTime:       b.StartTime.UTC(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		BayID:           b.BayID,
		CreatedAt:       b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(grid *domain.Grid, bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(grid, booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

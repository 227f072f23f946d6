package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-WashBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
// userId берется из токена, а не из тела
type CreateBookingRequest struct {
	LocationID string `json:"locationId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`      // "2025-03-10"
	StartTime  string `json:"startTime"` // "10:00"
}

// RewardsResponse баланс лояльности после бронирования
type RewardsResponse struct {
	LoyaltyPoints int `json:"loyaltyPoints"`
	FreeWashes    int `json:"freeWashes"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	LocationID      string           `json:"locationId"`
	ServiceID       string           `json:"serviceId"`
	Date            string           `json:"date"`
	TimeSlot        string           `json:"timeSlot"`
	StartTime       string           `json:"startTime"` // UTC, RFC 3339
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	BayID           int              `json:"bayId"`
	CreatedAt       string           `json:"createdAt"`
	Rewards         *RewardsResponse `json:"rewards,omitempty"`
	RewardsWarning  *string          `json:"rewardsWarning,omitempty"`
}

// errInvalidDate и errInvalidTime различают ошибки парсинга для ответа клиенту
var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		UserID:     userID,
		LocationID: r.LocationID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		LocationID:      resp.LocationID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		TimeSlot:        resp.StartTime.String(),
		StartTime:       resp.StartInstant.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		BayID:           resp.BayID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		RewardsWarning:  resp.RewardsWarning,
	}

	if resp.Rewards != nil {
		out.Rewards = &RewardsResponse{
			LoyaltyPoints: resp.Rewards.LoyaltyPoints,
			FreeWashes:    resp.Rewards.FreeWashes,
		}
	}

	return out
}

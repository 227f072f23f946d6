package redeem_free_wash

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	redeemFreeWash "github.com/m04kA/SMC-WashBooking/internal/usecase/redeem_free_wash"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// RedeemRequest HTTP request model
type RedeemRequest struct {
	LocationID string `json:"locationId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
}

// RedeemResponse HTTP response model
type RedeemResponse struct {
	ID                  string `json:"id"`
	UserID              string `json:"userId"`
	LocationID          string `json:"locationId"`
	ServiceID           string `json:"serviceId"`
	Date                string `json:"date"`
	TimeSlot            string `json:"timeSlot"`
	StartTime           string `json:"startTime"`
	DurationMinutes     int    `json:"durationMinutes"`
	Status              string `json:"status"`
	BayID               int    `json:"bayId"`
	CreatedAt           string `json:"createdAt"`
	RemainingFreeWashes int    `json:"remainingFreeWashes"`
	LoyaltyPoints       int    `json:"loyaltyPoints"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RedeemRequest) ToUseCaseRequest(userID string) (*redeemFreeWash.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	return &redeemFreeWash.Request{
		UserID:     userID,
		LocationID: r.LocationID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *redeemFreeWash.Response) *RedeemResponse {
	return &RedeemResponse{
		ID:                  resp.ID,
		UserID:              resp.UserID,
		LocationID:          resp.LocationID,
		ServiceID:           resp.ServiceID,
		Date:                resp.Date.Format(domain.DateFormat),
		TimeSlot:            resp.StartTime.String(),
		StartTime:           resp.StartInstant.UTC().Format(time.RFC3339),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		BayID:               resp.BayID,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		RemainingFreeWashes: resp.RemainingFreeWashes,
		LoyaltyPoints:       resp.LoyaltyPoints,
	}
}

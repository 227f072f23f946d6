package domain

import (
	"errors"
	"time"
)

// ErrNoFreeWash возвращается при списании с нулевого баланса
var ErrNoFreeWash = errors.New("domain: no free wash available")

// Rewards баланс лояльности пользователя на конкретной точке
// Инварианты: LoyaltyPoints в [0, PointsPerFreeWash-1], FreeWashes >= 0
type Rewards struct {
	UserID        string
	LocationID    string
	LoyaltyPoints int
	FreeWashes    int
	UpdatedAt     time.Time
}

// NewRewards возвращает пустой баланс
func NewRewards(userID, locationID string) *Rewards {
	return &Rewards{UserID: userID, LocationID: locationID}
}

// Accrue начисляет балл за оплаченную мойку
// На десятом балле счетчик обнуляется и добавляется бесплатная мойка.
// Возвращает true, если бесплатная мойка была заработана.
func (r *Rewards) Accrue() bool {
	r.LoyaltyPoints++
	if r.LoyaltyPoints >= PointsPerFreeWash {
		r.LoyaltyPoints = 0
		r.FreeWashes++
		return true
	}
	return false
}

// HasFreeWash returns true if at least one free wash can be redeemed
func (r *Rewards) HasFreeWash() bool {
	return r.FreeWashes >= 1
}

// DebitFreeWash списывает одну бесплатную мойку
func (r *Rewards) DebitFreeWash() error {
	if !r.HasFreeWash() {
		return ErrNoFreeWash
	}
	r.FreeWashes--
	return nil
}

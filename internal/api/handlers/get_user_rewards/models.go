package get_user_rewards

import "github.com/m04kA/SMC-WashBooking/internal/domain"

// RewardsResponse баланс лояльности на одной точке
type RewardsResponse struct {
	LocationID    string `json:"locationId"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
	FreeWashes    int    `json:"freeWashes"`
}

// RewardsListResponse балансы пользователя по всем точкам
type RewardsListResponse struct {
	Rewards []RewardsResponse `json:"rewards"`
}

// FromDomainRewards конвертирует domain модель в DTO
func FromDomainRewards(r *domain.Rewards) RewardsResponse {
	return RewardsResponse{
		LocationID:    r.LocationID,
		LoyaltyPoints: r.LoyaltyPoints,
		FreeWashes:    r.FreeWashes,
	}
}

// FromDomainRewardsList конвертирует список балансов
func FromDomainRewardsList(list []*domain.Rewards) *RewardsListResponse {
	out := &RewardsListResponse{Rewards: make([]RewardsResponse, 0, len(list))}
	for _, r := range list {
		out.Rewards = append(out.Rewards, FromDomainRewards(r))
	}
	return out
}

package get_user_rewards

import (
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service RewardsService
	logger  Logger
}

func NewHandler(service RewardsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/rewards
// Query params: locationId (опционально). Без него возвращаются балансы по всем точкам.
// Точка без записи отдается с нулевым балансом.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/rewards - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	locationID := r.URL.Query().Get("locationId")
	if locationID != "" {
		rewards, err := h.service.Get(r.Context(), userID, locationID)
		if err != nil {
			h.logger.Error("GET /users/me/rewards - Failed to get rewards: user_id=%s, location_id=%s, error=%v",
				userID, locationID, err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, FromDomainRewards(rewards))
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/rewards - Failed to list rewards: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainRewardsList(list))
}

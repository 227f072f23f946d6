package update_daily_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidActiveBays  = "некорректное число активных боксов"
	msgLocationNotFound   = "точка не найдена"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/manager/settings/daily
// Переопределение действует только на указанную дату
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateDailySettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /manager/settings/daily - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /manager/settings/daily - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SetDaily(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /manager/settings/daily - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActiveBays)

		case errors.Is(err, settings.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("POST /manager/settings/daily - Failed to update settings: location_id=%s, date=%s, error=%v",
				req.LocationID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /manager/settings/daily - Override saved: location_id=%s, date=%s, active_bays=%d",
		result.LocationID, req.Date, result.EffectiveBays)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/service/settings"
)

const (
	msgMissingLocationID = "ID точки обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLocationNotFound  = "точка не найдена"
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

// Handle GET /api/v1/manager/settings
// Query params: locationId (required), date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("locationId")
	if locationID == "" {
		h.logger.Warn("GET /manager/settings - Missing location ID")
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	serviceReq, err := ToServiceRequest(locationID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /manager/settings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Get(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingLocationID)

		default:
			h.logger.Error("GET /manager/settings - Failed to get settings: location_id=%s, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /manager/settings - Settings retrieved: location_id=%s, effective_bays=%d",
		locationID, result.EffectiveBays)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

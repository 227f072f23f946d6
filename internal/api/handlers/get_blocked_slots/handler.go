package get_blocked_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/blockedslots"
)

const (
	msgMissingParams    = "ID точки и дата обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLocationNotFound = "точка не найдена"
)

type Handler struct {
	service BlockedSlotService
	logger  Logger
}

func NewHandler(service BlockedSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/manager/blocked-slots
// Query params: locationId, date (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("locationId")
	dateStr := r.URL.Query().Get("date")
	if locationID == "" || dateStr == "" {
		h.logger.Warn("GET /manager/blocked-slots - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /manager/blocked-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	labels, err := h.service.List(r.Context(), locationID, date)
	if err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, blockedslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /manager/blocked-slots - Failed to list: location_id=%s, date=%s, error=%v",
				locationID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(locationID, dateStr, labels))
}

package get_bookings_summary

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/bookings"
)

const (
	msgMissingParams    = "ID точки и дата обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLocationNotFound = "точка не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/manager/bookings/summary
// Query params: locationId, date (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("locationId")
	dateStr := r.URL.Query().Get("date")
	if locationID == "" || dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /manager/bookings/summary - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Summary(r.Context(), locationID, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /manager/bookings/summary - Failed to build summary: location_id=%s, date=%s, error=%v",
				locationID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

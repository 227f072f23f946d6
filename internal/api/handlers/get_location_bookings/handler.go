package get_location_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/service/bookings"
)

const (
	msgMissingLocationID = "ID точки обязателен"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidRange      = "некорректный диапазон дат"
	msgLocationNotFound  = "точка не найдена"
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

// Handle GET /api/v1/manager/bookings
// Query params: locationId (required), date или startDate+endDate, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	locationID := q.Get("locationId")
	if locationID == "" {
		h.logger.Warn("GET /manager/bookings - Missing location ID")
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	serviceReq, err := ToServiceRequest(locationID, q.Get("date"), q.Get("startDate"), q.Get("endDate"), q.Get("status"))
	if err != nil {
		h.logger.Warn("GET /manager/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetLocationBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /manager/bookings - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /manager/bookings - Failed to get bookings: location_id=%s, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /manager/bookings - Bookings retrieved successfully: location_id=%s, count=%d",
		locationID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

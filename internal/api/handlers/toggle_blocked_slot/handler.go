package toggle_blocked_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/service/blockedslots"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeSlot    = "время не совпадает ни с одним слотом"
	msgLocationNotFound   = "точка не найдена"
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

// Handle POST /api/v1/manager/blocked-slots
// Повторный вызов с теми же параметрами снимает блокировку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /manager/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slot, err := types.NewTimeStringFromString(req.TimeSlot)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		return
	}

	blocked, err := h.service.Toggle(r.Context(), req.LocationID, date, slot)
	if err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, blockedslots.ErrInvalidTimeSlot):
			h.logger.Warn("POST /manager/blocked-slots - Off-grid slot: location_id=%s, slot=%s", req.LocationID, slot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, blockedslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /manager/blocked-slots - Failed to toggle: location_id=%s, date=%s, slot=%s, error=%v",
				req.LocationID, req.Date, slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /manager/blocked-slots - Slot toggled: location_id=%s, date=%s, slot=%s, blocked=%t",
		req.LocationID, req.Date, slot, blocked)
	handlers.RespondJSON(w, http.StatusOK, &ToggleResponse{
		LocationID: req.LocationID,
		Date:       req.Date,
		TimeSlot:   slot.String(),
		Blocked:    blocked,
	})
}

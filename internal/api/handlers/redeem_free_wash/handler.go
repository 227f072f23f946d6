package redeem_free_wash

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/api/middleware"
	redeemFreeWash "github.com/m04kA/SMC-WashBooking/internal/usecase/redeem_free_wash"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректная дата или время начала"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNoRewardAvailable  = "нет доступных бесплатных моек на этой точке"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgLocationNotFound   = "точка не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidBooking     = "некорректные данные бронирования"
)

type Handler struct {
	useCase RedeemFreeWashUseCase
	logger  Logger
}

func NewHandler(useCase RedeemFreeWashUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/redeem-free-wash
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/redeem-free-wash - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RedeemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/redeem-free-wash - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/redeem-free-wash - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, redeemFreeWash.ErrNoRewardAvailable):
			h.logger.Warn("POST /bookings/redeem-free-wash - No reward: user_id=%s, location_id=%s",
				userID, req.LocationID)
			handlers.RespondConflict(w, msgNoRewardAvailable)

		case errors.Is(err, redeemFreeWash.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/redeem-free-wash - Slot not available: location_id=%s, time=%s %s",
				req.LocationID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, redeemFreeWash.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, redeemFreeWash.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, redeemFreeWash.ErrInvalidDate),
			errors.Is(err, redeemFreeWash.ErrInvalidTimeSlot),
			errors.Is(err, redeemFreeWash.ErrInvalidInput):
			h.logger.Warn("POST /bookings/redeem-free-wash - Invalid booking: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("POST /bookings/redeem-free-wash - Failed to redeem: user_id=%s, location_id=%s, error=%v",
				userID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/redeem-free-wash - Free wash redeemed: booking_id=%s, user_id=%s, remaining=%d",
		result.ID, userID, result.RemainingFreeWashes)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package get_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WashBooking/internal/service/catalog"
)

const (
	msgMissingLocationID = "ID точки обязателен"
	msgLocationNotFound  = "точка не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Query params: locationId (required)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("locationId")
	if locationID == "" {
		h.logger.Warn("GET /services - Missing location ID")
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	result, err := h.service.ListServices(r.Context(), locationID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /services - Failed to list services: location_id=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services - Services retrieved: location_id=%s, count=%d", locationID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

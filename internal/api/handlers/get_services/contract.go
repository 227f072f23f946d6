package get_services

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, locationID string) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_settings

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/service/settings/models"
)

type SettingsService interface {
	SetGlobal(ctx context.Context, req *models.SetGlobalRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

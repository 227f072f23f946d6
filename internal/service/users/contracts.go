package users

import (
	"context"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/internal/integrations/identity"
)

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	CreateIfNotExists(ctx context.Context, u *domain.User) (bool, error)
}

// IdentityClient интерфейс клиента identity provider
type IdentityClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, uid string) (*identity.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

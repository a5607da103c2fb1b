package vendors

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// VendorRepository интерфейс справочника исполнителей
type VendorRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetRegistrationByUser(ctx context.Context, userID string, role domain.Role) (*domain.Registration, error)
	GetRegistrationByQRToken(ctx context.Context, token string) (*domain.Registration, error)
	ReplaceOpeningHours(ctx context.Context, registrationID string, hours []domain.OpeningHours) error
	ListServices(ctx context.Context, registrationID string) ([]*domain.Service, error)
	ListSpecialists(ctx context.Context, ownerUserID string) ([]*domain.Specialist, error)
	CreateSpecialist(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package generate_walkin_qr

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// VendorRepository интерфейс справочника исполнителей
type VendorRepository interface {
	GetRegistrationByUser(ctx context.Context, userID string, role domain.Role) (*domain.Registration, error)
	SetQRTokenIfEmpty(ctx context.Context, registrationID, token string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBusyIntervals(ctx context.Context, scope domain.ConflictScope, date string) ([]domain.Interval, error)
}

// VendorRepository интерфейс справочника исполнителей
type VendorRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetRegistrationByUser(ctx context.Context, userID string, role domain.Role) (*domain.Registration, error)
	GetService(ctx context.Context, serviceType domain.ServiceType, id string) (*domain.Service, error)
	GetSpecialist(ctx context.Context, id string) (*domain.Specialist, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_walkin_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListBusyIntervals(ctx context.Context, scope domain.ConflictScope, date string) ([]domain.Interval, error)
	CountByVendorAndDate(ctx context.Context, vendorID, date string) (int, error)
}

// VendorRepository интерфейс справочника исполнителей
type VendorRepository interface {
	GetRegistrationByQRToken(ctx context.Context, token string) (*domain.Registration, error)
	GetService(ctx context.Context, serviceType domain.ServiceType, id string) (*domain.Service, error)
	GetSpecialist(ctx context.Context, id string) (*domain.Specialist, error)
}

// Throttle ограничитель частоты записей в живую очередь
type Throttle interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Notifier рассылка уведомлений, ошибки не возвращает
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingCreated(source string)
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

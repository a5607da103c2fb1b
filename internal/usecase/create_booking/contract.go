package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/filestorage"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// VendorRepository интерфейс справочника исполнителей
type VendorRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetRegistrationByUser(ctx context.Context, userID string, role domain.Role) (*domain.Registration, error)
	GetOwnerService(ctx context.Context, id string) (*domain.Service, error)
	GetFreelancerService(ctx context.Context, id string) (*domain.Service, error)
	GetSpecialist(ctx context.Context, id string) (*domain.Specialist, error)
}

// ConflictDetector проверка пересечения слотов
type ConflictDetector interface {
	HasConflict(ctx context.Context, scope domain.ConflictScope, date string, slotStart, slotEnd int) (bool, error)
}

// FileStorage хранилище изображений бронирования
type FileStorage interface {
	Save(ctx context.Context, files []filestorage.Upload) ([]domain.Image, error)
	Delete(ctx context.Context, images []domain.Image) error
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

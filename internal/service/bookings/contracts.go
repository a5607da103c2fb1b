package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter, desc bool) ([]*domain.Booking, error)
	UpdateRequest(ctx context.Context, id string, request domain.RequestState, status *domain.BookingStatus) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	MarkPaid(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
}

// Notifier интерфейс отправки уведомлений, ошибки доставки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

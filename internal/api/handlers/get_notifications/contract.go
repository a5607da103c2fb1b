package get_notifications

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type Notifier interface {
	List(ctx context.Context, userID string, limit uint64) ([]*domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notifier

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/pushgateway"
)

// UserRepository источник push-токенов получателей
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// NotificationRepository хранилище отправленных уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByReceiver(ctx context.Context, receiverID string, limit uint64) ([]*domain.Notification, error)
}

// PushClient клиент шлюза push-уведомлений
type PushClient interface {
	Send(ctx context.Context, msg pushgateway.Message) (*pushgateway.SendResponse, error)
}

// Metrics счетчик результатов отправки
type Metrics interface {
	IncNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)

// Repository хранит отправленные уведомления
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	var bookingID *string
	if n.BookingID != "" {
		bookingID = &n.BookingID
	}

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("id", "receiver_id", "booking_id", "title", "message", "type").
		Values(n.ID, n.ReceiverID, bookingID, n.Title, n.Message, n.Type).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByReceiver получает последние уведомления пользователя
func (r *Repository) ListByReceiver(ctx context.Context, receiverID string, limit uint64) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "receiver_id", "COALESCE(booking_id::text, '')", "title", "message", "type", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"receiver_id": receiverID}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReceiver - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReceiver - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.ReceiverID, &n.BookingID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByReceiver - scan: %v", ErrScanRow, err)
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReceiver - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

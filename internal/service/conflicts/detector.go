package conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("conflicts: internal error")

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasOverlap(ctx context.Context, scope domain.ConflictScope, date string, slotStart, slotEnd int) (bool, error)
}

// Metrics счетчик обнаруженных конфликтов
type Metrics interface {
	IncConflict(scope string)
}

// Detector проверяет, свободен ли слот у исполнителя или специалиста
type Detector struct {
	bookingRepo BookingRepository
	metrics     Metrics
}

// NewDetector создает детектор конфликтов, metrics может быть nil
func NewDetector(bookingRepo BookingRepository, metrics Metrics) *Detector {
	return &Detector{bookingRepo: bookingRepo, metrics: metrics}
}

// HasConflict возвращает true, если в области scope на дату date есть активное бронирование,
// пересекающееся с [slotStart, slotEnd)
// Удаленные, отмененные и отклоненные бронирования слот не занимают
func (d *Detector) HasConflict(ctx context.Context, scope domain.ConflictScope, date string, slotStart, slotEnd int) (bool, error) {
	conflict, err := d.bookingRepo.HasOverlap(ctx, scope, date, slotStart, slotEnd)
	if err != nil {
		return false, fmt.Errorf("%w: %s %s on %s: %w", ErrInternal, scope.Kind, scope.ID, date, err)
	}

	if conflict && d.metrics != nil {
		d.metrics.IncConflict(string(scope.Kind))
	}
	return conflict, nil
}

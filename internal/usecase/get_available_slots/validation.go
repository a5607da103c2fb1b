package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.VendorID) == "" {
		return fmt.Errorf("%w: vendorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	return nil
}

// searchStart минута, с которой ищутся слоты на дату
// Для сегодняшнего дня прошедшее время пропускается
func searchStart(date string, now time.Time) (int, error) {
	if _, err := slottime.ParseDate(date); err != nil {
		return 0, ErrInvalidDate
	}

	today := slottime.DateOf(now)
	switch {
	case slottime.IsBeforeDate(date, today):
		return 0, ErrPastDate
	case slottime.SameDate(date, today):
		return slottime.MinutesOf(now), nil
	default:
		return 0, nil
	}
}

// dayBounds часы работы исполнителя на дату
func dayBounds(reg *domain.Registration, date string) (open, closeAt int, err error) {
	weekday, err := slottime.WeekdayName(date)
	if err != nil {
		return 0, 0, ErrInvalidDate
	}

	hours, ok := reg.HoursFor(weekday)
	if !ok || !hours.Enabled {
		return 0, 0, ErrClosed
	}

	open, closeAt, err = hours.Bounds()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrClosed, weekday, err)
	}
	return open, closeAt, nil
}

// serviceTypeFor каталог услуг, соответствующий роли исполнителя
func serviceTypeFor(role domain.Role) domain.ServiceType {
	if role == domain.RoleOwner {
		return domain.ServiceTypeOwner
	}
	return domain.ServiceTypeFreelancer
}

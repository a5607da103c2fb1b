package create_walkin_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// todayBounds часы работы салона на день now в минутах от полуночи
func todayBounds(reg *domain.Registration, now time.Time) (open, closeAt int, err error) {
	weekday := now.Weekday().String()

	hours, ok := reg.HoursFor(weekday)
	if !ok || !hours.Enabled {
		return 0, 0, ErrClosedToday
	}

	open, closeAt, err = hours.Bounds()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrClosedToday, weekday, err)
	}
	return open, closeAt, nil
}

package get_dashboard

import (
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// Dashboard текущее состояние очереди исполнителя
type Dashboard struct {
	ServicingNow []*domain.Booking // обслуживаются прямо сейчас
	NextLine     []*domain.Booking // ближайшие N на сегодня
	WaitingToday []*domain.Booking // остальные на сегодня
	Upcoming     []*domain.Booking // будущие дни
}

// Classify раскладывает бронирования по корзинам панели на момент (today, now)
// Закончившиеся сегодня и прошлые бронирования в панель не попадают.
// Порядок внутри корзин: (date, slotStart) по возрастанию.
func Classify(bookings []*domain.Booking, today string, now, nextLineSize int) Dashboard {
	sorted := make([]*domain.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return slottime.IsBeforeDate(sorted[i].Date, sorted[j].Date)
		}
		return sorted[i].SlotStart < sorted[j].SlotStart
	})

	d := Dashboard{
		ServicingNow: make([]*domain.Booking, 0),
		NextLine:     make([]*domain.Booking, 0),
		WaitingToday: make([]*domain.Booking, 0),
		Upcoming:     make([]*domain.Booking, 0),
	}

	for _, b := range sorted {
		switch {
		case slottime.SameDate(b.Date, today):
			switch {
			case b.SlotStart <= now && now <= b.SlotEnd:
				d.ServicingNow = append(d.ServicingNow, b)
			case b.SlotStart > now:
				if len(d.NextLine) < nextLineSize {
					d.NextLine = append(d.NextLine, b)
				} else {
					d.WaitingToday = append(d.WaitingToday, b)
				}
			}
		case slottime.IsBeforeDate(today, b.Date):
			d.Upcoming = append(d.Upcoming, b)
		}
	}

	return d
}

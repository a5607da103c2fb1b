package create_booking

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// priceEpsilon допустимая погрешность сравнения цен
const priceEpsilon = 0.005

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerID) == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VendorID) == "" {
		return fmt.Errorf("%w: vendorID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	for _, a := range req.AddOns {
		if a.Price < 0 {
			return fmt.Errorf("%w: add-on %q has negative price", ErrInvalidInput, a.Name)
		}
		if a.Qty < 0 {
			return fmt.Errorf("%w: add-on %q has negative quantity", ErrInvalidInput, a.Name)
		}
	}
	return nil
}

// parseSlot разбирает строку времени и переводит ошибки в ошибки usecase
func parseSlot(timeRange string) (start, end int, err error) {
	start, end, err = slottime.ParseDisplayRange(timeRange)
	switch {
	case err == nil:
		return start, end, nil
	case errors.Is(err, slottime.ErrEndBeforeStart):
		return 0, 0, ErrEndBeforeStart
	case errors.Is(err, slottime.ErrInvalidTime):
		return 0, 0, ErrInvalidTimeRange
	default:
		return 0, 0, ErrInvalidTimeFormat
	}
}

// validateDate проверяет формат даты и что она не в прошлом
func validateDate(date string, now time.Time) error {
	if _, err := slottime.ParseDate(date); err != nil {
		return ErrInvalidDate
	}
	if slottime.IsBeforeDate(date, slottime.DateOf(now)) {
		return ErrPastDate
	}
	return nil
}

// validateServiceOwnership проверяет, что услуга из каталога этого исполнителя
func validateServiceOwnership(service *domain.Service, reg *domain.Registration) error {
	if service.RegistrationID != reg.ID {
		return ErrServiceMismatch
	}
	if expected := serviceTypeFor(reg.Role); expected != service.Type {
		return fmt.Errorf("%w: %s cannot offer %s", ErrServiceMismatch, reg.Role, service.Type)
	}
	return nil
}

// serviceTypeFor каталог услуг, соответствующий роли исполнителя
func serviceTypeFor(role domain.Role) domain.ServiceType {
	if role == domain.RoleOwner {
		return domain.ServiceTypeOwner
	}
	return domain.ServiceTypeFreelancer
}

// normalizeAddOns не указанное количество считается за одну штуку
func normalizeAddOns(addOns []domain.AddOn) []domain.AddOn {
	if len(addOns) == 0 {
		return nil
	}
	out := make([]domain.AddOn, len(addOns))
	for i, a := range addOns {
		if a.Qty == 0 {
			a.Qty = 1
		}
		out[i] = a
	}
	return out
}

// totalPrice цена услуги вместе с дополнениями, дополнение считается как price * qty
func totalPrice(service *domain.Service, addOns []domain.AddOn) float64 {
	total := service.Price
	for _, a := range addOns {
		total += a.Total()
	}
	return total
}

// validatePrice сверяет цену клиента с расчетной
func validatePrice(quoted *float64, expected float64) error {
	if quoted == nil {
		return nil
	}
	if math.Abs(*quoted-expected) > priceEpsilon {
		return fmt.Errorf("%w: expected %.2f, got %.2f", ErrPriceMismatch, expected, *quoted)
	}
	return nil
}

// validateBusinessHours проверяет, что слот целиком попадает в часы работы салона
func validateBusinessHours(reg *domain.Registration, date string, slotStart, slotEnd int) error {
	weekday, err := slottime.WeekdayName(date)
	if err != nil {
		return ErrInvalidDate
	}

	hours, ok := reg.HoursFor(weekday)
	if !ok || !hours.Enabled {
		return ErrSalonClosed
	}

	open, closeAt, err := hours.Bounds()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSalonClosed, weekday, err)
	}

	if slotStart < open || slotEnd > closeAt {
		return ErrOutsideHours
	}
	return nil
}

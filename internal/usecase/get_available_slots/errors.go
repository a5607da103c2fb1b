package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = fmt.Errorf("%w: invalid date", domain.ErrValidation)

	// ErrPastDate дата раньше сегодняшней
	ErrPastDate = fmt.Errorf("%w: past date", domain.ErrValidation)

	// ErrVendorNotFound исполнитель не найден
	ErrVendorNotFound = fmt.Errorf("%w: vendor not found", domain.ErrNotFound)

	// ErrServiceNotFound услуга не найдена у исполнителя
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrInvalidDuration длительность услуги не положительное целое число
	ErrInvalidDuration = fmt.Errorf("%w: invalid service duration", domain.ErrValidation)

	// ErrSpecialistRequired для салона нужно выбрать специалиста
	ErrSpecialistRequired = fmt.Errorf("%w: specialist is required", domain.ErrValidation)

	// ErrSpecialistNotFound специалист не найден или работает в другом салоне
	ErrSpecialistNotFound = fmt.Errorf("%w: specialist not found", domain.ErrNotFound)

	// ErrClosed исполнитель не работает в этот день
	ErrClosed = fmt.Errorf("%w: salon closed this day", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)

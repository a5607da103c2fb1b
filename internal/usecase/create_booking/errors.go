package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidTimeFormat строка времени не похожа на "h:mm AM - h:mm PM"
	ErrInvalidTimeFormat = fmt.Errorf("%w: invalid time format", domain.ErrValidation)

	// ErrInvalidTimeRange часы или минуты вне допустимых значений
	ErrInvalidTimeRange = fmt.Errorf("%w: invalid range values", domain.ErrValidation)

	// ErrEndBeforeStart конец слота не позже начала
	ErrEndBeforeStart = fmt.Errorf("%w: end before start", domain.ErrValidation)

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = fmt.Errorf("%w: invalid date", domain.ErrValidation)

	// ErrPastDate дата бронирования раньше сегодняшней
	ErrPastDate = fmt.Errorf("%w: past date", domain.ErrValidation)

	// ErrVendorNotFound исполнитель не найден
	ErrVendorNotFound = fmt.Errorf("%w: vendor not found", domain.ErrNotFound)

	// ErrCustomerNotFound клиент не найден
	ErrCustomerNotFound = fmt.Errorf("%w: customer not found", domain.ErrNotFound)

	// ErrNotAVendor аккаунт не является салоном или мастером
	ErrNotAVendor = fmt.Errorf("%w: account is not a vendor", domain.ErrValidation)

	// ErrRegistrationNotFound у исполнителя нет профиля
	ErrRegistrationNotFound = fmt.Errorf("%w: vendor registration not found", domain.ErrNotFound)

	// ErrUnknownServiceType неизвестный тип услуги
	ErrUnknownServiceType = fmt.Errorf("%w: unknown service type", domain.ErrValidation)

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrServiceMismatch услуга не принадлежит исполнителю
	ErrServiceMismatch = fmt.Errorf("%w: service does not belong to this vendor", domain.ErrValidation)

	// ErrPriceMismatch переданная цена не совпадает с ценой услуги и дополнений
	ErrPriceMismatch = fmt.Errorf("%w: price does not match service price", domain.ErrValidation)

	// ErrSpecialistRequired для салона нужно выбрать специалиста
	ErrSpecialistRequired = fmt.Errorf("%w: specialist is required", domain.ErrValidation)

	// ErrSpecialistNotFound специалист не найден или работает в другом салоне
	ErrSpecialistNotFound = fmt.Errorf("%w: specialist not found", domain.ErrNotFound)

	// ErrSpecialistNotAllowed у частного мастера нет специалистов
	ErrSpecialistNotAllowed = fmt.Errorf("%w: specialist is not allowed for freelancer", domain.ErrValidation)

	// ErrSalonClosed салон не работает в этот день
	ErrSalonClosed = fmt.Errorf("%w: salon closed this day", domain.ErrValidation)

	// ErrOutsideHours слот выходит за часы работы
	ErrOutsideHours = fmt.Errorf("%w: outside business hours", domain.ErrValidation)

	// ErrSpecialistBooked у специалиста уже есть бронь на это время
	ErrSpecialistBooked = fmt.Errorf("%w: specialist already booked", domain.ErrConflict)

	// ErrVendorBooked у исполнителя уже есть бронь на это время
	ErrVendorBooked = fmt.Errorf("%w: vendor already booked", domain.ErrConflict)

	// ErrNoImages не передано ни одного изображения
	ErrNoImages = fmt.Errorf("%w: at least one image is required", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

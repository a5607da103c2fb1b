package create_walkin_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidQRCode токен QR-кода не найден
	ErrInvalidQRCode = fmt.Errorf("%w: invalid QR code", domain.ErrNotFound)

	// ErrServiceNotFound услуга не найдена в каталоге салона
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrInvalidDuration длительность услуги не положительное целое число
	ErrInvalidDuration = fmt.Errorf("%w: invalid service duration", domain.ErrValidation)

	// ErrSpecialistNotFound специалист не найден или работает в другом салоне
	ErrSpecialistNotFound = fmt.Errorf("%w: specialist not found", domain.ErrNotFound)

	// ErrClosedToday салон сегодня не работает
	ErrClosedToday = fmt.Errorf("%w: closed today", domain.ErrValidation)

	// ErrFullyBooked на сегодня не осталось свободных слотов
	ErrFullyBooked = fmt.Errorf("%w: fully booked or past for today", domain.ErrValidation)

	// ErrTooManyWalkIns слишком много записей с одного телефона
	ErrTooManyWalkIns = fmt.Errorf("%w: too many walk-in bookings, try again later", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_walkin_booking: internal error")
)

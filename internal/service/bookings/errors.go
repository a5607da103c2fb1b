package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или удалено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при неизвестном или отсутствующем статусе
	ErrInvalidStatus = fmt.Errorf("%w: invalid booking status", domain.ErrValidation)

	// ErrSlotTaken возвращается, когда слот брони уже занят другой активной бронью
	ErrSlotTaken = fmt.Errorf("%w: slot already taken", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

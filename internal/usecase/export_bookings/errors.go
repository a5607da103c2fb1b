package export_bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput не указан исполнитель
	ErrInvalidInput = fmt.Errorf("%w: invalid input", domain.ErrValidation)

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", domain.ErrValidation)

	// ErrInvalidPeriod конец периода раньше начала или период слишком длинный
	ErrInvalidPeriod = fmt.Errorf("%w: invalid export period", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_bookings: internal error")
)

package vendors

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrVendorNotFound возвращается, когда исполнитель или его профиль не найден
	ErrVendorNotFound = fmt.Errorf("%w: vendor not found", domain.ErrNotFound)

	// ErrSalonNotFound возвращается, когда у пользователя нет салона
	ErrSalonNotFound = fmt.Errorf("%w: salon not found", domain.ErrNotFound)

	// ErrInvalidQRCode возвращается для неизвестного токена QR-кода
	ErrInvalidQRCode = fmt.Errorf("%w: invalid QR code", domain.ErrNotFound)

	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = fmt.Errorf("%w: invalid opening hours", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

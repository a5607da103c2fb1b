package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда вставка или обновление нарушили ограничение на пересечение слотов
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrInvalidScope возвращается при неизвестной области проверки конфликтов
	ErrInvalidScope = errors.New("booking.repository: invalid conflict scope")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации JSON полей
	ErrEncode = errors.New("booking.repository: failed to encode json field")
)

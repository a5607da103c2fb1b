package create_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/filestorage"
)

// Request модель запроса на онлайн-бронирование
type Request struct {
	CustomerID   string             // ID клиента из токена
	VendorID     string             // ID салона или мастера
	ServiceID    string             // ID услуги
	ServiceType  domain.ServiceType // каталог, из которого взята услуга
	SpecialistID *string            // обязателен для салона, запрещен для мастера
	Date         string             // YYYY-MM-DD
	Time         string             // "10:00 AM - 11:00 AM"
	AddOns       []domain.AddOn
	Price        *float64 // если передана, должна совпасть с расчетной
	Notes        *string
	Email        *string // контакт для этой брони, может отличаться от аккаунта
	Location     *string // адрес выезда мастера
	Images       []filestorage.Upload
}


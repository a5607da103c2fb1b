package create_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/filestorage"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest JSON часть "data" multipart запроса
type CreateBookingRequest struct {
	VendorID     string         `json:"vendorId" validate:"required"`
	ServiceID    string         `json:"serviceId" validate:"required"`
	ServiceType  string         `json:"serviceType" validate:"required,oneof=OwnerService FreelancerService"`
	SpecialistID *string        `json:"specialistId,omitempty"`
	Date         string         `json:"date" validate:"required,date"` // "2026-10-16"
	Time         string         `json:"time" validate:"required"`      // "10:00 AM - 11:00 AM", разбирает use case
	AddOns       []domain.AddOn `json:"addOns,omitempty"`
	Price        *float64       `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes        *string        `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Email        *string        `json:"email,omitempty" validate:"omitempty,email"`
	Location     *string        `json:"serviceLocation,omitempty" validate:"omitempty,max=300"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID string, images []filestorage.Upload) *createBooking.Request {
	return &createBooking.Request{
		CustomerID:   customerID,
		VendorID:     r.VendorID,
		ServiceID:    r.ServiceID,
		ServiceType:  domain.ServiceType(r.ServiceType),
		SpecialistID: r.SpecialistID,
		Date:         r.Date,
		Time:         r.Time,
		AddOns:       r.AddOns,
		Price:        r.Price,
		Notes:        r.Notes,
		Email:        r.Email,
		Location:     r.Location,
		Images:       images,
	}
}

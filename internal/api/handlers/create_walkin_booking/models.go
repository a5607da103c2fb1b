package create_walkin_booking

import (
	createWalkIn "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_walkin_booking"
)

// CreateWalkInRequest HTTP request model
type CreateWalkInRequest struct {
	QRToken       string `json:"qrToken" validate:"required"`
	ServiceID     string `json:"serviceId" validate:"required"`
	SpecialistID  string `json:"specialistId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=32"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateWalkInRequest) ToUseCaseRequest() *createWalkIn.Request {
	return &createWalkIn.Request{
		QRToken:       r.QRToken,
		ServiceID:     r.ServiceID,
		SpecialistID:  r.SpecialistID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}
}

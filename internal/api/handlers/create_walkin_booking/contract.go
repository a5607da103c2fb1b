package create_walkin_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createWalkIn "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_walkin_booking"
)

type CreateWalkInUseCase interface {
	Execute(ctx context.Context, req *createWalkIn.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package export_bookings

import (
	"context"

	exportBookings "github.com/m04kA/SMC-SalonBooking/internal/usecase/export_bookings"
)

type UseCase interface {
	Execute(ctx context.Context, req *exportBookings.Request) (*exportBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type BookingService interface {
	Approve(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error)
	Decline(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error)
	Complete(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

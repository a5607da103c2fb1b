package get_vendor_history

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetVendorHistory(ctx context.Context, vendorID string, status *string) (*models.BookingListResponse, error)
	GetVendorRequests(ctx context.Context, vendorID string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_opening_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

type VendorService interface {
	GetOpeningHours(ctx context.Context, vendorID string) (*models.OpeningHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

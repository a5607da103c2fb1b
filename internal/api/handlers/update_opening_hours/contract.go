package update_opening_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

type VendorService interface {
	ReplaceOpeningHours(ctx context.Context, vendorID string, role domain.Role, days []models.Day) (*models.OpeningHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

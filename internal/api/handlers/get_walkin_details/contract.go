package get_walkin_details

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

type VendorService interface {
	GetWalkInDetails(ctx context.Context, token string) (*models.WalkInDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

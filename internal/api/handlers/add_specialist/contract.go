package add_specialist

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

type VendorService interface {
	AddSpecialist(ctx context.Context, ownerID string, req *models.AddSpecialistRequest) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

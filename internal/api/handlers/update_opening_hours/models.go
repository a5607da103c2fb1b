package update_opening_hours

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

// UpdateOpeningHoursRequest HTTP request model, расписание заменяется целиком
type UpdateOpeningHoursRequest struct {
	Days []models.Day `json:"days" validate:"max=7,dive"`
}

package get_specialists

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service VendorService
	logger  Logger
}

func NewHandler(service VendorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendor/specialists
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendor/specialists - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	specialists, err := h.service.ListSpecialists(r.Context(), ownerID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /vendor/specialists - Rejected: owner_id=%s, reason=%v", ownerID, err)
			return
		}
		h.logger.Error("GET /vendor/specialists - Failed: owner_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, specialists)
}

package add_specialist

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/vendor/specialists
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /vendor/specialists - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendor/specialists - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !handlers.ValidateRequest(w, &req) {
		return
	}

	specialist, err := h.service.AddSpecialist(r.Context(), ownerID, &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /vendor/specialists - Rejected: owner_id=%s, reason=%v", ownerID, err)
			return
		}
		h.logger.Error("POST /vendor/specialists - Failed: owner_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /vendor/specialists - Specialist added: owner_id=%s, specialist_id=%s", ownerID, specialist.ID)
	handlers.RespondJSON(w, http.StatusCreated, specialist)
}

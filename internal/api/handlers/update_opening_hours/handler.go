package update_opening_hours

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
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

// Handle PUT /api/v1/vendor/opening-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /vendor/opening-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateOpeningHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vendor/opening-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !handlers.ValidateRequest(w, &req) {
		return
	}

	result, err := h.service.ReplaceOpeningHours(r.Context(), userID, role, req.Days)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PUT /vendor/opening-hours - Rejected: user_id=%s, reason=%v", userID, err)
			return
		}
		h.logger.Error("PUT /vendor/opening-hours - Failed: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /vendor/opening-hours - Schedule updated: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

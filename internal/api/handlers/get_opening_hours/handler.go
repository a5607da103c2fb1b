package get_opening_hours

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
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

// Handle GET /api/v1/vendors/{vendorId}/opening-hours
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	result, err := h.service.GetOpeningHours(r.Context(), vendorID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /vendors/{id}/opening-hours - Rejected: vendor_id=%s, reason=%v", vendorID, err)
			return
		}
		h.logger.Error("GET /vendors/{id}/opening-hours - Failed: vendor_id=%s, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vendors/{id}/opening-hours - Retrieved: vendor_id=%s, days=%d", vendorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}

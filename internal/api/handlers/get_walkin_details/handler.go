package get_walkin_details

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

// Handle GET /api/v1/walk-in/{qrToken}
// Данные салона для формы записи на месте
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["qrToken"]

	result, err := h.service.GetWalkInDetails(r.Context(), token)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /walk-in/{token} - Rejected: %v", err)
			return
		}
		h.logger.Error("GET /walk-in/{token} - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /walk-in/{token} - Salon details retrieved: vendor_id=%s", result.VendorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

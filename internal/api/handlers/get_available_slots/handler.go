package get_available_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), specialistId (для салона)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]
	query := r.URL.Query()

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /vendors/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /vendors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(vendorID, serviceID, query.Get("specialistId"), date))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /vendors/{id}/available-slots - Rejected: vendor_id=%s, service_id=%s, reason=%v",
				vendorID, serviceID, err)
			return
		}
		h.logger.Error("GET /vendors/{id}/available-slots - Failed to get slots: vendor_id=%s, service_id=%s, error=%v",
			vendorID, serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vendors/{id}/available-slots - Slots retrieved successfully: vendor_id=%s, date=%s, slots_count=%d",
		vendorID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

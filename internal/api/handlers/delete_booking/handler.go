package delete_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{bookingId}
// Мягкое удаление: запись остается в базе с is_deleted=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("DELETE /admin/bookings/{id} - Rejected: booking_id=%s, reason=%v", bookingID, err)
			return
		}
		h.logger.Error("DELETE /admin/bookings/{id} - Failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%s", bookingID)
	w.WriteHeader(http.StatusNoContent)
}

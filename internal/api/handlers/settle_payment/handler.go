package settle_payment

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/internal/payments/settled
// Защищен общим секретом (middleware.RequireSharedSecret)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SettlePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/payments/settled - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !handlers.ValidateRequest(w, &req) {
		return
	}

	if err := h.service.Settle(r.Context(), req.BookingID); err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /internal/payments/settled - Rejected: booking_id=%s, reason=%v", req.BookingID, err)
			return
		}
		h.logger.Error("POST /internal/payments/settled - Failed: booking_id=%s, error=%v", req.BookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/payments/settled - Booking paid: booking_id=%s", req.BookingID)
	handlers.RespondJSON(w, http.StatusOK, SettlePaymentResponse{BookingID: req.BookingID, IsPaid: true})
}

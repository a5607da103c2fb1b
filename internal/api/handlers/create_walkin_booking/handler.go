package create_walkin_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createWalkIn "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_walkin_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase CreateWalkInUseCase
	logger  Logger
}

func NewHandler(useCase CreateWalkInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/walk-in
// Публичный маршрут, клиент пришел по QR-коду салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateWalkInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /walk-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("POST /walk-in - Validation failed")
		return
	}

	booking, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createWalkIn.ErrTooManyWalkIns):
			h.logger.Warn("POST /walk-in - Throttled: service_id=%s", req.ServiceID)
			handlers.RespondTooManyRequests(w, "too many walk-in bookings, try again later")

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /walk-in - Rejected: service_id=%s, reason=%v", req.ServiceID, err)

		default:
			h.logger.Error("POST /walk-in - Failed to create walk-in booking: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	queue := 0
	if booking.QueueNumber != nil {
		queue = *booking.QueueNumber
	}
	h.logger.Info("POST /walk-in - Walk-in booking created: booking_id=%s, vendor_id=%s, queue=%d",
		booking.ID, booking.VendorID, queue)
	handlers.RespondJSON(w, http.StatusCreated, bookingModels.FromDomainBooking(booking))
}

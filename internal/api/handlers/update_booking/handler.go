package update_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Action переход жизненного цикла брони
type Action string

const (
	ActionApprove  Action = "approve"
	ActionDecline  Action = "decline"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	action  Action
	logger  Logger
}

func NewHandler(service BookingService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{approve|decline|complete|cancel}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /bookings/{id}/%s", h.action)
	bookingID := mux.Vars(r)["bookingId"]

	userID, role, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.apply(r.Context(), bookingID, models.Actor{UserID: userID, Role: role})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("%s - Rejected: booking_id=%s, reason=%v", route, bookingID, err)

		default:
			h.logger.Error("%s - Failed: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Done: booking_id=%s, request=%s, status=%s", route, bookingID, booking.Request, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) apply(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	switch h.action {
	case ActionApprove:
		return h.service.Approve(ctx, id, actor)
	case ActionDecline:
		return h.service.Decline(ctx, id, actor)
	case ActionComplete:
		return h.service.Complete(ctx, id, actor)
	case ActionCancel:
		return h.service.Cancel(ctx, id, actor)
	}
	return nil, fmt.Errorf("unknown action %q", h.action)
}

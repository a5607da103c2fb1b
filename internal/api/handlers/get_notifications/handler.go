package get_notifications

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"

	defaultLimit = 50
)

// NotificationResponse HTTP response model
type NotificationResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	notifier Notifier
	logger   Logger
}

func NewHandler(notifier Notifier, logger Logger) *Handler {
	return &Handler{
		notifier: notifier,
		logger:   logger,
	}
}

// Handle GET /api/v1/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	items, err := h.notifier.List(r.Context(), userID, defaultLimit)
	if err != nil {
		h.logger.Error("GET /notifications - Failed: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomain(items))
}

func fromDomain(items []*domain.Notification) []NotificationResponse {
	resp := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, NotificationResponse{
			ID:        n.ID,
			BookingID: n.BookingID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}

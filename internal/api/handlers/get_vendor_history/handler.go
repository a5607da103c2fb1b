package get_vendor_history

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/vendor/history?status=completed
// Все брони исполнителя, новые сверху
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "GET /vendor/history", func(vendorID string) (*models.BookingListResponse, error) {
		var status *string
		if s := r.URL.Query().Get("status"); s != "" {
			status = &s
		}
		return h.service.GetVendorHistory(r.Context(), vendorID, status)
	})
}

// HandleRequests GET /api/v1/vendor/requests
// Заявки, ожидающие решения
func (h *Handler) HandleRequests(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "GET /vendor/requests", func(vendorID string) (*models.BookingListResponse, error) {
		return h.service.GetVendorRequests(r.Context(), vendorID)
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route string, fetch func(vendorID string) (*models.BookingListResponse, error)) {
	vendorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := fetch(vendorID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("%s - Rejected: vendor_id=%s, reason=%v", route, vendorID, err)
			return
		}
		h.logger.Error("%s - Failed to get bookings: vendor_id=%s, error=%v", route, vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Bookings retrieved successfully: vendor_id=%s, count=%d", route, vendorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

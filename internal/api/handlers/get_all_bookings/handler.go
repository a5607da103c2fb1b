package get_all_bookings

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgInvalidPagination = "некорректные параметры пагинации"
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

// Handle GET /api/v1/admin/bookings?limit=50&offset=0&status=pending&vendorId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseUint(query, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}
	offset, err := parseUint(query, "offset")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	req := &models.ListRequest{
		Limit:  limit,
		Offset: offset,
	}
	if v := query.Get("vendorId"); v != "" {
		req.VendorID = &v
	}
	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /admin/bookings - Rejected: %v", err)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d, offset=%d", len(result.Bookings), offset)
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

func parseUint(query url.Values, key string) (uint64, error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

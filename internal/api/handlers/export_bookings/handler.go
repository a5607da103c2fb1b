package export_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	exportBookings "github.com/m04kA/SMC-SalonBooking/internal/usecase/export_bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendor/bookings/export?from=2026-10-01&to=2026-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendor/bookings/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req := &exportBookings.Request{
		VendorID: vendorID,
		DateFrom: query.Get("from"),
		DateTo:   query.Get("to"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /vendor/bookings/export - Rejected: vendor_id=%s, reason=%v", vendorID, err)
			return
		}
		h.logger.Error("GET /vendor/bookings/export - Failed: vendor_id=%s, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vendor/bookings/export - Exported: vendor_id=%s, rows=%d", vendorID, result.Rows)

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Warn("GET /vendor/bookings/export - Failed to write body: %v", err)
	}
}

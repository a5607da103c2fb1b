package get_dashboard

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/vendor/home
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendor/home - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dashboard, err := h.useCase.ForVendor(r.Context(), vendorID)
	if err != nil {
		h.logger.Error("GET /vendor/home - Failed to build dashboard: vendor_id=%s, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseDashboard(dashboard))
}

// HandleServicingNow GET /api/v1/admin/servicing-now
// Панель по всем исполнителям, только для администратора
func (h *Handler) HandleServicingNow(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.useCase.ServicingNow(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/servicing-now - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseDashboard(dashboard))
}

package get_walkin_qr

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

// QRCodeResponse HTTP response model
type QRCodeResponse struct {
	QRToken string `json:"qrToken"`
	URL     string `json:"url"`
	QRCode  string `json:"qrCode"`
}

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

// Handle GET /api/v1/vendor/qr
// Только для владельца салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendor/qr - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ownerID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /vendor/qr - Rejected: owner_id=%s, reason=%v", ownerID, err)
			return
		}
		h.logger.Error("GET /vendor/qr - Failed: owner_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, QRCodeResponse{
		QRToken: result.Token,
		URL:     result.URL,
		QRCode:  result.Image,
	})
}

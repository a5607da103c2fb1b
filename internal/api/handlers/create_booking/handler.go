package create_booking

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/filestorage"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingData        = "отсутствует часть data с параметрами бронирования"
	msgTooLarge           = "слишком большой запрос"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase      CreateBookingUseCase
	maxBodyBytes int64
	logger       Logger
}

func NewHandler(useCase CreateBookingUseCase, maxUploadMB int, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		maxBodyBytes: int64(maxUploadMB) << 20,
		logger:       logger,
	}
}

// Handle POST /api/v1/bookings
// multipart/form-data: data - JSON с параметрами, images - файлы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var (
		req    CreateBookingRequest
		images []filestorage.Upload
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
			h.logger.Warn("POST /bookings - Failed to parse multipart form: %v", err)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
				return
			}
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		defer r.MultipartForm.RemoveAll()

		data := r.MultipartForm.Value["data"]
		if len(data) == 0 {
			h.logger.Warn("POST /bookings - Missing data part")
			handlers.RespondBadRequest(w, msgMissingData)
			return
		}
		if err := json.Unmarshal([]byte(data[0]), &req); err != nil {
			h.logger.Warn("POST /bookings - Invalid data part: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}

		files, closeFiles, err := openImages(r.MultipartForm.File["images"])
		defer closeFiles()
		if err != nil {
			h.logger.Warn("POST /bookings - Failed to open uploaded image: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		images = files
	} else if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !handlers.ValidateRequest(w, &req) {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%s", userID)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, images))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /bookings - Rejected: user_id=%s, vendor_id=%s, reason=%v", userID, req.VendorID, err)
			return
		}
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, vendor_id=%s, error=%v",
			userID, req.VendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, vendor_id=%s",
		booking.ID, userID, req.VendorID)
	handlers.RespondJSON(w, http.StatusCreated, bookingModels.FromDomainBooking(booking))
}

// openImages открывает загруженные файлы, closeFiles нужно вызвать в любом случае
func openImages(headers []*multipart.FileHeader) ([]filestorage.Upload, func(), error) {
	var opened []io.Closer
	closeFiles := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}

	uploads := make([]filestorage.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeFiles, err
		}
		opened = append(opened, f)
		uploads = append(uploads, filestorage.Upload{Filename: fh.Filename, Data: f})
	}
	return uploads, closeFiles, nil
}

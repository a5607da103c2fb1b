package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/validator"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var requestValidator = validator.NewValidator()

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidationErrors 400 с ошибками по полям
func RespondValidationErrors(w http.ResponseWriter, fields map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
}

// RespondDomainError отвечает по виду доменной ошибки: 400, 404 или 409
// Возвращает false, если ошибка не доменная и ответ не записан
func RespondDomainError(w http.ResponseWriter, err error) bool {
	switch domain.Kind(err) {
	case domain.ErrValidation:
		RespondBadRequest(w, reason(err, domain.ErrValidation))
	case domain.ErrNotFound:
		RespondNotFound(w, reason(err, domain.ErrNotFound))
	case domain.ErrConflict:
		RespondConflict(w, reason(err, domain.ErrConflict))
	default:
		return false
	}
	return true
}

// reason текст ошибки без префикса вида ("conflict: already approved" -> "already approved")
func reason(err, kind error) string {
	msg := err.Error()
	prefix := kind.Error() + ": "
	for len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		msg = msg[len(prefix):]
	}
	return msg
}

// DecodeJSON читает тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// ValidateRequest проверяет теги validate у структуры
// При ошибке 400 с ошибками по полям уже записан, обработчик должен просто выйти
func ValidateRequest(w http.ResponseWriter, dst interface{}) bool {
	if err := requestValidator.Validate(dst); err != nil {
		RespondValidationErrors(w, requestValidator.FormatValidationErrors(err))
		return false
	}
	return true
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{fmt.Errorf("%w: past date", domain.ErrValidation), http.StatusBadRequest, "past date"},
		{fmt.Errorf("%w: vendor not found", domain.ErrNotFound), http.StatusNotFound, "vendor not found"},
		{domain.ErrAlreadyApproved, http.StatusConflict, "already approved"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		require.True(t, RespondDomainError(w, tt.err))
		assert.Equal(t, tt.wantStatus, w.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.wantMsg, body.Error)
	}

	w := httptest.NewRecorder()
	assert.False(t, RespondDomainError(w, errors.New("db down")))
	assert.Equal(t, 0, w.Body.Len())
}

type payload struct {
	Date string `json:"date" validate:"required,date"`
}

func TestDecodeAndValidate(t *testing.T) {
	var p payload

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2026-10-16"}`))
	require.NoError(t, DecodeJSON(r, &p))
	assert.Equal(t, "2026-10-16", p.Date)
	assert.True(t, ValidateRequest(httptest.NewRecorder(), &p))

	bad := payload{Date: "16.10.2026"}
	w := httptest.NewRecorder()
	require.False(t, ValidateRequest(w, &bad))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields["date"], "YYYY-MM-DD")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &payload{}))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":`))
	assert.Error(t, DecodeJSON(r, &payload{}))
}

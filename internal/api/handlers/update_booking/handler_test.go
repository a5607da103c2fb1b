package update_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) call(name, id string, actor models.Actor) (*models.BookingResponse, error) {
	args := m.MethodCalled(name, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *serviceMock) Approve(_ context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return m.call("Approve", id, actor)
}

func (m *serviceMock) Decline(_ context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return m.call("Decline", id, actor)
}

func (m *serviceMock) Complete(_ context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return m.call("Complete", id, actor)
}

func (m *serviceMock) Cancel(_ context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return m.call("Cancel", id, actor)
}

func serve(t *testing.T, svc BookingService, action Action, identity bool) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	h := NewHandler(svc, action, logger.NewWithWriter(io.Discard, "error"))
	router.HandleFunc("/bookings/{bookingId}/"+string(action), h.Handle).Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, "/bookings/b1/"+string(action), nil)
	if identity {
		r = r.WithContext(middleware.WithIdentity(r.Context(), "vendor-1", domain.RoleOwner))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_Approve(t *testing.T) {
	svc := &serviceMock{}
	actor := models.Actor{UserID: "vendor-1", Role: domain.RoleOwner}
	svc.On("Approve", "b1", actor).Return(&models.BookingResponse{ID: "b1", Request: "approved", Status: "in-process"}, nil)

	w := serve(t, svc, ActionApprove, true)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "in-process", body.Status)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		action     Action
		method     string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"already rejected", ActionApprove, "Approve", domain.ErrAlreadyRejected, http.StatusConflict, "already rejected"},
		{"already approved", ActionDecline, "Decline", domain.ErrAlreadyApproved, http.StatusConflict, "already approved"},
		{"expired", ActionApprove, "Approve", domain.ErrExpiredSlot, http.StatusBadRequest, "cannot approve expired slot"},
		{"not found", ActionCancel, "Cancel", bookings.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
		{"forbidden", ActionComplete, "Complete", bookings.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"internal", ActionComplete, "Complete", bookings.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On(tt.method, "b1", mock.Anything).Return(nil, tt.err)

			w := serve(t, svc, tt.action, true)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	svc := &serviceMock{}
	w := serve(t, svc, ActionCancel, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

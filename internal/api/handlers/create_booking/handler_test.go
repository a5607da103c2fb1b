package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type useCaseStub struct {
	got    *createBooking.Request
	images map[string]string
	err    error
}

func (s *useCaseStub) Execute(_ context.Context, req *createBooking.Request) (*domain.Booking, error) {
	s.got = req
	// Файлы закрываются после ответа, поэтому читаем их здесь
	s.images = make(map[string]string)
	for _, img := range req.Images {
		data, _ := io.ReadAll(img.Data)
		s.images[img.Filename] = string(data)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{
		ID:        "b1",
		VendorID:  req.VendorID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		TimeRange: req.Time,
		Status:    domain.StatusPending,
		Request:   domain.RequestPending,
	}, nil
}

const validData = `{"vendorId":"owner-1","serviceId":"s1","serviceType":"OwnerService",` +
	`"specialistId":"sp1","date":"2026-10-20","time":"10:00 AM - 11:00 AM"}`

func multipartBody(t *testing.T, data string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func serve(t *testing.T, uc CreateBookingUseCase, body io.Reader, contentType string, identity bool) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, 1, logger.NewWithWriter(io.Discard, "error"))

	r := httptest.NewRequest(http.MethodPost, "/bookings", body)
	r.Header.Set("Content-Type", contentType)
	if identity {
		r = r.WithContext(middleware.WithIdentity(r.Context(), "customer-1", domain.RoleCustomer))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Multipart(t *testing.T) {
	uc := &useCaseStub{}
	body, ct := multipartBody(t, validData, map[string]string{"hair.jpg": "jpeg-bytes"})

	w := serve(t, uc, body, ct, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, "customer-1", uc.got.CustomerID)
	assert.Equal(t, "owner-1", uc.got.VendorID)
	assert.Equal(t, domain.ServiceTypeOwner, uc.got.ServiceType)
	require.NotNil(t, uc.got.SpecialistID)
	assert.Equal(t, "sp1", *uc.got.SpecialistID)
	assert.Equal(t, map[string]string{"hair.jpg": "jpeg-bytes"}, uc.images)

	var resp bookingModels.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "pending", resp.Request)
}

func TestHandle_JSONBody(t *testing.T) {
	uc := &useCaseStub{}

	w := serve(t, uc, strings.NewReader(validData), "application/json", true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, uc.got.Images)
}

func TestHandle_Rejections(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		w := serve(t, &useCaseStub{}, strings.NewReader(validData), "application/json", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing data part", func(t *testing.T) {
		body, ct := multipartBody(t, "", map[string]string{"a.jpg": "x"})
		w := serve(t, &useCaseStub{}, body, ct, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid fields", func(t *testing.T) {
		data := `{"vendorId":"owner-1","serviceId":"s1","serviceType":"Massage","date":"20.10.2026","time":"10 AM"}`
		uc := &useCaseStub{}
		w := serve(t, uc, strings.NewReader(data), "application/json", true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uc.got)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "serviceType")
		assert.Contains(t, resp.Fields, "date")
		assert.NotContains(t, resp.Fields, "time")
	})

	t.Run("body too large", func(t *testing.T) {
		big := strings.Repeat("x", 2<<20)
		body, ct := multipartBody(t, validData, map[string]string{"big.jpg": big})
		w := serve(t, &useCaseStub{}, body, ct, true)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"slot taken", createBooking.ErrSpecialistBooked, http.StatusConflict, "specialist already booked"},
		{"closed", createBooking.ErrSalonClosed, http.StatusBadRequest, "salon closed this day"},
		{"unknown vendor", createBooking.ErrVendorNotFound, http.StatusNotFound, "vendor not found"},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &useCaseStub{err: tt.err}, strings.NewReader(validData), "application/json", true)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantMsg != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestHandle_TimeRangeReasons(t *testing.T) {
	tests := []struct {
		name    string
		time    string
		err     error
		wantMsg string
	}{
		{"end before start", "11:00 AM - 10:00 AM", createBooking.ErrEndBeforeStart, "end before start"},
		{"bad values", "13:00 PM - 2:00 PM", createBooking.ErrInvalidTimeRange, "invalid range values"},
		{"bad format", "10:00 - 11:00", createBooking.ErrInvalidTimeFormat, "invalid time format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{"vendorId":"owner-1","serviceId":"s1","serviceType":"OwnerService",` +
				`"specialistId":"sp1","date":"2026-10-20","time":"` + tt.time + `"}`
			uc := &useCaseStub{err: tt.err}

			w := serve(t, uc, strings.NewReader(data), "application/json", true)
			require.Equal(t, http.StatusBadRequest, w.Code)

			// Строка времени доходит до use case без изменений
			require.NotNil(t, uc.got)
			assert.Equal(t, tt.time, uc.got.Time)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Empty(t, resp.Fields)
		})
	}
}

func TestHandle_ContactFieldsAndQuantity(t *testing.T) {
	t.Run("passed to use case", func(t *testing.T) {
		data := `{"vendorId":"owner-1","serviceId":"s1","serviceType":"OwnerService","specialistId":"sp1",` +
			`"date":"2026-10-20","time":"10:00 AM - 11:00 AM","email":"jo@example.com",` +
			`"serviceLocation":"12 Main St","addOns":[{"name":"Gel","price":5,"qty":2}]}`
		uc := &useCaseStub{}

		w := serve(t, uc, strings.NewReader(data), "application/json", true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.NotNil(t, uc.got.Email)
		assert.Equal(t, "jo@example.com", *uc.got.Email)
		require.NotNil(t, uc.got.Location)
		assert.Equal(t, "12 Main St", *uc.got.Location)
		assert.Equal(t, []domain.AddOn{{Name: "Gel", Price: 5, Qty: 2}}, uc.got.AddOns)
	})

	t.Run("invalid email", func(t *testing.T) {
		data := `{"vendorId":"owner-1","serviceId":"s1","serviceType":"OwnerService",` +
			`"date":"2026-10-20","time":"10:00 AM - 11:00 AM","email":"not-an-email"}`
		uc := &useCaseStub{}

		w := serve(t, uc, strings.NewReader(data), "application/json", true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uc.got)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "email")
	})
}

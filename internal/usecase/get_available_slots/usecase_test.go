package get_available_slots

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type busyStub map[domain.ConflictScope][]domain.Interval

func (b busyStub) ListBusyIntervals(_ context.Context, scope domain.ConflictScope, _ string) ([]domain.Interval, error) {
	return b[scope], nil
}

type vendorsStub struct{}

func (vendorsStub) GetUser(_ context.Context, id string) (*domain.User, error) {
	switch id {
	case "owner-1":
		return &domain.User{ID: id, Role: domain.RoleOwner}, nil
	case "customer-1":
		return &domain.User{ID: id, Role: domain.RoleCustomer}, nil
	}
	return nil, vendorRepo.ErrUserNotFound
}

func (vendorsStub) GetRegistrationByUser(_ context.Context, userID string, _ domain.Role) (*domain.Registration, error) {
	return &domain.Registration{
		ID:     "reg-1",
		UserID: userID,
		Role:   domain.RoleOwner,
		OpeningHours: []domain.OpeningHours{
			{Day: "Friday", Enabled: true, OpenTime: "09:00", CloseTime: "11:00"},
			{Day: "Saturday", Enabled: false, OpenTime: "09:00", CloseTime: "11:00"},
		},
	}, nil
}

func (vendorsStub) GetService(_ context.Context, t domain.ServiceType, id string) (*domain.Service, error) {
	if id == "trim" && t == domain.ServiceTypeOwner {
		return &domain.Service{ID: id, RegistrationID: "reg-1", Type: t, Duration: "30"}, nil
	}
	return nil, vendorRepo.ErrServiceNotFound
}

func (vendorsStub) GetSpecialist(_ context.Context, id string) (*domain.Specialist, error) {
	switch id {
	case "alex":
		return &domain.Specialist{ID: id, OwnerUserID: "owner-1"}, nil
	case "kim":
		return &domain.Specialist{ID: id, OwnerUserID: "owner-2"}, nil
	}
	return nil, vendorRepo.ErrSpecialistNotFound
}

func newUseCase(now time.Time, busy busyStub) *UseCase {
	return NewUseCase(busy, vendorsStub{}, logger.NewWithWriter(io.Discard, "error")).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute_FutureDayListsAllFreeSlots(t *testing.T) {
	busy := busyStub{
		domain.SpecialistScope("alex"): {{Start: 570, End: 600}},
		domain.VendorScope("owner-1"):   {{Start: 600, End: 630}},
	}
	uc := newUseCase(time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local), busy)

	resp, err := uc.Execute(context.Background(), &Request{
		VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-16",
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, Slot{Start: 540, End: 570, Time: "9:00 AM - 9:30 AM"}, resp.Slots[0])
	assert.Equal(t, Slot{Start: 630, End: 660, Time: "10:30 AM - 11:00 AM"}, resp.Slots[1])
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_TodaySkipsPastTime(t *testing.T) {
	uc := newUseCase(time.Date(2026, 10, 16, 10, 0, 0, 0, time.Local), busyStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-16",
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 600, resp.Slots[0].Start)
}

func TestExecute_Errors(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.Local)
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"past date", Request{VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-15"}, ErrPastDate},
		{"bad date", Request{VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "tomorrow"}, ErrInvalidDate},
		{"closed day", Request{VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-17"}, ErrClosed},
		{"missing day", Request{VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-18"}, ErrClosed},
		{"no specialist", Request{VendorID: "owner-1", ServiceID: "trim", Date: "2026-10-16"}, ErrSpecialistRequired},
		{"foreign specialist", Request{VendorID: "owner-1", ServiceID: "trim", SpecialistID: ptr.Ptr("kim"), Date: "2026-10-16"}, ErrSpecialistNotFound},
		{"unknown service", Request{VendorID: "owner-1", ServiceID: "perm", SpecialistID: ptr.Ptr("alex"), Date: "2026-10-16"}, ErrServiceNotFound},
		{"not a vendor", Request{VendorID: "customer-1", ServiceID: "trim", Date: "2026-10-16"}, ErrVendorNotFound},
		{"unknown vendor", Request{VendorID: "ghost", ServiceID: "trim", Date: "2026-10-16"}, ErrVendorNotFound},
		{"missing vendor", Request{ServiceID: "trim", Date: "2026-10-16"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(now, busyStub{})
			_, err := uc.Execute(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

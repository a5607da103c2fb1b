package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanApprove(t *testing.T) {
	const today = "2026-10-16"

	tests := []struct {
		name    string
		booking Booking
		now     int
		wantErr error
	}{
		{
			name:    "pending future slot",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestPending, Status: StatusPending},
			now:     540,
		},
		{
			name:    "pending tomorrow",
			booking: Booking{Date: "2026-10-17", SlotStart: 0, Request: RequestPending, Status: StatusPending},
			now:     1200,
		},
		{
			name:    "declined",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestDecline, Status: StatusPending},
			now:     540,
			wantErr: ErrAlreadyRejected,
		},
		{
			name:    "approved",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestApproved, Status: StatusInProcess},
			now:     540,
			wantErr: ErrAlreadyApproved,
		},
		{
			name:    "started today",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestPending, Status: StatusPending},
			now:     601,
			wantErr: ErrExpiredSlot,
		},
		{
			name:    "starts right now",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestPending, Status: StatusPending},
			now:     600,
		},
		{
			name:    "yesterday",
			booking: Booking{Date: "2026-10-15", SlotStart: 600, Request: RequestPending, Status: StatusPending},
			now:     0,
			wantErr: ErrExpiredSlot,
		},
		{
			name:    "canceled",
			booking: Booking{Date: today, SlotStart: 600, Request: RequestPending, Status: StatusCanceled},
			now:     540,
			wantErr: ErrBookingClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.CanApprove(today, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanApprove_ErrorKinds(t *testing.T) {
	b := Booking{Date: "2026-10-16", SlotStart: 600, Request: RequestDecline}
	assert.ErrorIs(t, b.CanApprove("2026-10-16", 0), ErrConflict)

	b = Booking{Date: "2026-10-16", SlotStart: 600, Request: RequestPending}
	assert.ErrorIs(t, b.CanApprove("2026-10-16", 700), ErrValidation)
}

func TestCanDecline(t *testing.T) {
	assert.NoError(t, (&Booking{Request: RequestPending}).CanDecline())
	assert.ErrorIs(t, (&Booking{Request: RequestApproved}).CanDecline(), ErrConflict)
	assert.ErrorIs(t, (&Booking{Request: RequestPending, Status: StatusCompleted}).CanDecline(), ErrBookingClosed)
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending, Request: RequestPending}).IsActive())
	assert.False(t, (&Booking{Status: StatusCanceled}).IsActive())
	assert.False(t, (&Booking{Request: RequestDecline}).IsActive())
	assert.False(t, (&Booking{IsDeleted: true}).IsActive())
}

func TestKind(t *testing.T) {
	assert.Equal(t, ErrConflict, Kind(ErrAlreadyApproved))
	assert.Equal(t, ErrValidation, Kind(ErrExpiredSlot))
	assert.Nil(t, Kind(assert.AnError))
}

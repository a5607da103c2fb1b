package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/slottime"

// CanApprove checks the approval guards against the current date and minute.
// A declined or already approved request cannot be approved, and neither can
// a slot that has already started.
func (b *Booking) CanApprove(today string, nowMinutes int) error {
	switch b.Request {
	case RequestDecline:
		return ErrAlreadyRejected
	case RequestApproved:
		return ErrAlreadyApproved
	}

	if b.IsClosed() {
		return ErrBookingClosed
	}

	if slottime.IsBeforeDate(b.Date, today) {
		return ErrExpiredSlot
	}
	if slottime.SameDate(b.Date, today) && b.SlotStart < nowMinutes {
		return ErrExpiredSlot
	}
	return nil
}

// CanDecline checks the decline guards
func (b *Booking) CanDecline() error {
	if b.Request == RequestApproved {
		return ErrAlreadyApproved
	}
	if b.IsClosed() {
		return ErrBookingClosed
	}
	return nil
}

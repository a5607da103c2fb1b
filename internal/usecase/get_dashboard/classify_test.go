package get_dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

const today = "2026-10-16"

func booking(id, date string, start, end int) *domain.Booking {
	return &domain.Booking{ID: id, Date: date, SlotStart: start, SlotEnd: end, Request: domain.RequestApproved}
}

func ids(bookings []*domain.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestClassify_SingleBookingOverTime(t *testing.T) {
	b := booking("b", today, 600, 660)

	d := Classify([]*domain.Booking{b}, today, 630, 4)
	assert.Equal(t, []string{"b"}, ids(d.ServicingNow))

	d = Classify([]*domain.Booking{b}, today, 500, 4)
	assert.Empty(t, d.ServicingNow)
	assert.Equal(t, []string{"b"}, ids(d.NextLine))

	d = Classify([]*domain.Booking{b}, today, 700, 4)
	assert.Empty(t, d.ServicingNow)
	assert.Empty(t, d.NextLine)
	assert.Empty(t, d.WaitingToday)
	assert.Empty(t, d.Upcoming)
}

func TestClassify_ServicingNowIncludesBothEnds(t *testing.T) {
	b := booking("b", today, 600, 660)

	assert.Len(t, Classify([]*domain.Booking{b}, today, 600, 4).ServicingNow, 1)
	assert.Len(t, Classify([]*domain.Booking{b}, today, 660, 4).ServicingNow, 1)
}

func TestClassify_NextLineCutoffAndOrdering(t *testing.T) {
	bookings := []*domain.Booking{
		booking("t6", today, 900, 930),
		booking("t2", today, 660, 690),
		booking("up2", "2026-10-20", 540, 570),
		booking("t5", today, 840, 870),
		booking("t1", today, 630, 660),
		booking("past", "2026-10-15", 540, 570),
		booking("up1", "2026-10-17", 600, 630),
		booking("t4", today, 780, 810),
		booking("t3", today, 720, 750),
		booking("now", today, 580, 640),
		booking("done", today, 480, 520),
	}

	d := Classify(bookings, today, 600, 4)

	assert.Equal(t, []string{"now"}, ids(d.ServicingNow))
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, ids(d.NextLine))
	assert.Equal(t, []string{"t5", "t6"}, ids(d.WaitingToday))
	assert.Equal(t, []string{"up1", "up2"}, ids(d.Upcoming))
}

func TestClassify_DoesNotReorderInput(t *testing.T) {
	bookings := []*domain.Booking{booking("b", today, 700, 730), booking("a", today, 650, 680)}

	Classify(bookings, today, 600, 4)
	assert.Equal(t, []string{"b", "a"}, ids(bookings))
}

type listStub struct {
	filter domain.BookingFilter
	items  []*domain.Booking
	err    error
}

func (l *listStub) List(_ context.Context, filter domain.BookingFilter, _ bool) ([]*domain.Booking, error) {
	l.filter = filter
	return l.items, l.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestUseCase_ForVendor(t *testing.T) {
	repo := &listStub{items: []*domain.Booking{booking("b", today, 600, 660)}}
	uc := NewUseCase(repo, 0, logger.NewWithWriter(io.Discard, "error")).
		WithTimeProvider(fixedTime{now: time.Date(2026, 10, 16, 10, 30, 0, 0, time.Local)})

	d, err := uc.ForVendor(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(d.ServicingNow))

	require.NotNil(t, repo.filter.VendorID)
	assert.Equal(t, "owner-1", *repo.filter.VendorID)
	assert.Equal(t, today, *repo.filter.DateFrom)
	assert.Equal(t, []domain.RequestState{domain.RequestApproved}, repo.filter.Requests)
	assert.Equal(t, domain.TerminalStatuses, repo.filter.ExcludeStatuses)
}

func TestUseCase_ServicingNowAcrossVendors(t *testing.T) {
	repo := &listStub{}
	uc := NewUseCase(repo, 4, logger.NewWithWriter(io.Discard, "error"))

	_, err := uc.ServicingNow(context.Background())
	require.NoError(t, err)
	assert.Nil(t, repo.filter.VendorID)
}

func TestUseCase_StorageError(t *testing.T) {
	repo := &listStub{err: errors.New("connection reset")}
	uc := NewUseCase(repo, 4, logger.NewWithWriter(io.Discard, "error"))

	_, err := uc.ForVendor(context.Background(), "owner-1")
	require.ErrorIs(t, err, ErrInternal)
}

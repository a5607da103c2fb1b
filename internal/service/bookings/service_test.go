package bookings

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type memRepo struct {
	items      map[string]*domain.Booking
	lastList   domain.BookingFilter
	failList   error
	failUpdate error
}

func newMemRepo(bookings ...*domain.Booking) *memRepo {
	r := &memRepo{items: map[string]*domain.Booking{}}
	for _, b := range bookings {
		r.items[b.ID] = b
	}
	return r
}

func (r *memRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.items[id]
	if !ok || b.IsDeleted {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, filter domain.BookingFilter, _ bool) ([]*domain.Booking, error) {
	r.lastList = filter
	if r.failList != nil {
		return nil, r.failList
	}
	var out []*domain.Booking
	for _, b := range r.items {
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) update(id string, fn func(b *domain.Booking)) error {
	b, ok := r.items[id]
	if !ok || b.IsDeleted {
		return bookingRepo.ErrBookingNotFound
	}
	if r.failUpdate != nil {
		return r.failUpdate
	}
	fn(b)
	return nil
}

func (r *memRepo) UpdateRequest(_ context.Context, id string, request domain.RequestState, status *domain.BookingStatus) error {
	return r.update(id, func(b *domain.Booking) {
		b.Request = request
		if status != nil {
			b.Status = *status
		}
	})
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	return r.update(id, func(b *domain.Booking) { b.Status = status })
}

func (r *memRepo) MarkPaid(_ context.Context, id string) error {
	return r.update(id, func(b *domain.Booking) {
		b.IsPaid = true
		b.Status = domain.StatusPending
	})
}

func (r *memRepo) SoftDelete(_ context.Context, id string) error {
	return r.update(id, func(b *domain.Booking) { b.IsDeleted = true })
}

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierStub struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *notifierStub) Notify(_ context.Context, msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type movingClock struct{ t time.Time }

func (c *movingClock) Now() time.Time { return c.t }

// lockWaitTx сдвигает часы перед выполнением, как при ожидании блокировки строки
type lockWaitTx struct {
	clock *movingClock
	wait  time.Duration
}

func (tx lockWaitTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.clock.t = tx.clock.t.Add(tx.wait)
	return fn(ctx)
}

var (
	customer = models.Actor{UserID: "cust-1", Role: domain.RoleCustomer}
	vendor   = models.Actor{UserID: "vendor-1", Role: domain.RoleFreelancer}
	stranger = models.Actor{UserID: "other", Role: domain.RoleFreelancer}
	admin    = models.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
)

func pendingBooking(id, date string, start int) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerID:    ptr.Ptr("cust-1"),
		VendorID:      "vendor-1",
		ServiceName:   "Haircut",
		Date:          date,
		TimeRange:     "10:00 AM - 11:00 AM",
		SlotStart:     start,
		SlotEnd:       start + 60,
		Status:        domain.StatusPending,
		Request:       domain.RequestPending,
		BookingSource: domain.SourceOnline,
	}
}

func newService(repo *memRepo) (*Service, *notifierStub) {
	n := &notifierStub{}
	// 2026-10-16 12:00
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	s := NewService(repo, n, txStub{}, logger.NewWithWriter(io.Discard, "error")).
		WithTimeProvider(fixedTime{t: now})
	return s, n
}

func TestGetByID_Access(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-20", 600))
	s, _ := newService(repo)
	ctx := context.Background()

	for _, actor := range []models.Actor{customer, vendor, admin} {
		resp, err := s.GetByID(ctx, "b1", actor)
		require.NoError(t, err, actor.UserID)
		assert.Equal(t, "b1", resp.ID)
		assert.NotNil(t, resp.AddOns)
	}

	_, err := s.GetByID(ctx, "b1", stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(ctx, "missing", admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_DeletedIsNotFound(t *testing.T) {
	b := pendingBooking("b1", "2026-10-20", 600)
	b.IsDeleted = true
	s, _ := newService(newMemRepo(b))

	_, err := s.GetByID(context.Background(), "b1", customer)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApprove(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-20", 600))
	s, n := newService(repo)

	resp, err := s.Approve(context.Background(), "b1", vendor)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Request)
	assert.Equal(t, "in-process", resp.Status)

	stored := repo.items["b1"]
	assert.Equal(t, domain.RequestApproved, stored.Request)
	assert.Equal(t, domain.StatusInProcess, stored.Status)

	require.Len(t, n.sent, 2)
	receivers := []string{n.sent[0].ReceiverID, n.sent[1].ReceiverID}
	assert.ElementsMatch(t, []string{"vendor-1", "cust-1"}, receivers)
	assert.Equal(t, domain.NotificationBookingApproved, n.sent[0].Type)
}

func TestApprove_Guards(t *testing.T) {
	declined := pendingBooking("declined", "2026-10-20", 600)
	declined.Request = domain.RequestDecline
	approved := pendingBooking("approved", "2026-10-20", 600)
	approved.Request = domain.RequestApproved
	completed := pendingBooking("completed", "2026-10-20", 600)
	completed.Status = domain.StatusCompleted

	tests := []struct {
		name    string
		booking *domain.Booking
		actor   models.Actor
		wantErr error
	}{
		{"already rejected", declined, vendor, domain.ErrAlreadyRejected},
		{"already approved", approved, vendor, domain.ErrAlreadyApproved},
		{"closed", completed, vendor, domain.ErrBookingClosed},
		{"started today", pendingBooking("started", "2026-10-16", 660), vendor, domain.ErrExpiredSlot},
		{"yesterday", pendingBooking("old", "2026-10-15", 900), vendor, domain.ErrExpiredSlot},
		{"customer cannot approve", pendingBooking("c", "2026-10-20", 600), customer, ErrAccessDenied},
		{"other vendor", pendingBooking("o", "2026-10-20", 600), stranger, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo(tt.booking)
			s, n := newService(repo)

			_, err := s.Approve(context.Background(), tt.booking.ID, tt.actor)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, n.sent)
		})
	}
}

func TestApprove_LaterTodayAndAdmin(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-16", 720))
	s, _ := newService(repo)

	_, err := s.Approve(context.Background(), "b1", admin)
	require.NoError(t, err)
}

func TestDecline(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-20", 600))
	s, n := newService(repo)

	resp, err := s.Decline(context.Background(), "b1", vendor)
	require.NoError(t, err)
	assert.Equal(t, "decline", resp.Request)
	assert.Equal(t, "pending", resp.Status)
	assert.Len(t, n.sent, 2)

	// Отклоненную заявку принять нельзя
	_, err = s.Approve(context.Background(), "b1", vendor)
	assert.ErrorIs(t, err, domain.ErrAlreadyRejected)
}

func TestDecline_Approved(t *testing.T) {
	b := pendingBooking("b1", "2026-10-20", 600)
	b.Request = domain.RequestApproved
	s, _ := newService(newMemRepo(b))

	_, err := s.Decline(context.Background(), "b1", vendor)
	require.ErrorIs(t, err, domain.ErrAlreadyApproved)
	assert.Equal(t, domain.ErrConflict, domain.Kind(err))
}

func TestCompleteAndCancel(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-20", 600), pendingBooking("b2", "2026-10-20", 700))
	s, _ := newService(repo)
	ctx := context.Background()

	resp, err := s.Complete(ctx, "b1", vendor)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	resp, err = s.Cancel(ctx, "b2", customer)
	require.NoError(t, err)
	assert.Equal(t, "canceled", resp.Status)
	assert.False(t, repo.items["b2"].IsActive())

	_, err = s.Cancel(ctx, "b2", stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.Complete(ctx, "missing", admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestWalkInTransitionNotifiesVendorOnly(t *testing.T) {
	b := pendingBooking("w1", "2026-10-16", 780)
	b.CustomerID = nil
	b.CustomerName = ptr.Ptr("Walk In")
	b.BookingSource = domain.SourceWalkIn
	s, n := newService(newMemRepo(b))

	_, err := s.Complete(context.Background(), "w1", vendor)
	require.NoError(t, err)
	require.Len(t, n.sent, 1)
	assert.Equal(t, "vendor-1", n.sent[0].ReceiverID)
}

func TestGetCustomerBookings(t *testing.T) {
	repo := newMemRepo(pendingBooking("b1", "2026-10-20", 600))
	s, _ := newService(repo)
	ctx := context.Background()

	_, err := s.GetCustomerBookings(ctx, "cust-1", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.GetCustomerBookings(ctx, "cust-1", "unknown")
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err := s.GetCustomerBookings(ctx, "cust-1", "pending")
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cust-1", *repo.lastList.CustomerID)
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending}, repo.lastList.Statuses)
}

func TestGetVendorRequests_Filter(t *testing.T) {
	repo := newMemRepo()
	s, _ := newService(repo)

	resp, err := s.GetVendorRequests(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Equal(t, []domain.RequestState{domain.RequestPending}, repo.lastList.Requests)
	assert.Equal(t, domain.TerminalStatuses, repo.lastList.ExcludeStatuses)
}

func TestList_Pagination(t *testing.T) {
	repo := newMemRepo()
	s, _ := newService(repo)
	ctx := context.Background()

	_, err := s.List(ctx, &models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(domain.DefaultPageLimit), repo.lastList.Limit)

	_, err = s.List(ctx, &models.ListRequest{Limit: domain.MaxPageLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.failList = errors.New("db down")
	_, err = s.List(ctx, &models.ListRequest{Limit: 10, Offset: 20})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, uint64(20), repo.lastList.Offset)
}

func TestSettleAndDelete(t *testing.T) {
	b := pendingBooking("b1", "2026-10-20", 600)
	b.Status = domain.StatusInProcess
	repo := newMemRepo(b)
	s, _ := newService(repo)
	ctx := context.Background()

	require.NoError(t, s.Settle(ctx, "b1"))
	assert.True(t, repo.items["b1"].IsPaid)
	assert.Equal(t, domain.StatusPending, repo.items["b1"].Status)

	require.NoError(t, s.Delete(ctx, "b1"))
	assert.ErrorIs(t, s.Delete(ctx, "b1"), ErrBookingNotFound)
	assert.ErrorIs(t, s.Settle(ctx, "b1"), ErrBookingNotFound)
}

func TestApprove_UsesTimeAfterLock(t *testing.T) {
	// Слот в 12:30, запрос пришел в 12:00, блокировку получили в 13:00
	repo := newMemRepo(pendingBooking("b1", "2026-10-16", 750))
	clock := &movingClock{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)}
	s := NewService(repo, &notifierStub{}, lockWaitTx{clock: clock, wait: time.Hour},
		logger.NewWithWriter(io.Discard, "error")).WithTimeProvider(clock)

	_, err := s.Approve(context.Background(), "b1", vendor)
	require.ErrorIs(t, err, domain.ErrExpiredSlot)
	assert.Equal(t, domain.RequestPending, repo.items["b1"].Request)
}

func TestTransitions_SlotTakenIsConflict(t *testing.T) {
	b := pendingBooking("b1", "2026-10-20", 600)
	b.Status = domain.StatusCanceled
	repo := newMemRepo(b)
	repo.failUpdate = bookingRepo.ErrSlotTaken
	s, n := newService(repo)
	ctx := context.Background()

	_, err := s.Complete(ctx, "b1", vendor)
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)

	err = s.Settle(ctx, "b1")
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Empty(t, n.sent)
	assert.Equal(t, domain.StatusCanceled, repo.items["b1"].Status)
}

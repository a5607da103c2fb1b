package create_walkin_booking

import (
	"context"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/ratelimit"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	today   = "2026-10-16" // пятница
	qrToken = "0f1e2d3c4b5a69788796a5b4c3d2e1f0"
)

// 08:20, currentMinutes = 500
var morning = time.Date(2026, 10, 16, 8, 20, 0, 0, time.Local)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type memBookings struct {
	items []*domain.Booking
}

func (m *memBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = fmt.Sprintf("walkin-%d", len(m.items)+1)
	copied := *b
	m.items = append(m.items, &copied)
	return b, nil
}

func (m *memBookings) ListBusyIntervals(_ context.Context, scope domain.ConflictScope, date string) ([]domain.Interval, error) {
	busy := make([]domain.Interval, 0)
	for _, b := range m.items {
		if !b.IsActive() || b.Date != date || b.SpecialistID == nil || *b.SpecialistID != scope.ID {
			continue
		}
		busy = append(busy, b.Interval())
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })
	return busy, nil
}

func (m *memBookings) CountByVendorAndDate(_ context.Context, vendorID, date string) (int, error) {
	count := 0
	for _, b := range m.items {
		if b.VendorID == vendorID && b.Date == date {
			count++
		}
	}
	return count, nil
}

type fakeVendors struct {
	reg         *domain.Registration
	services    map[string]*domain.Service
	specialists map[string]*domain.Specialist
}

func (f *fakeVendors) GetRegistrationByQRToken(_ context.Context, token string) (*domain.Registration, error) {
	if f.reg.QRToken != nil && *f.reg.QRToken == token {
		return f.reg, nil
	}
	return nil, vendorRepo.ErrRegistrationNotFound
}

func (f *fakeVendors) GetService(_ context.Context, t domain.ServiceType, id string) (*domain.Service, error) {
	if s, ok := f.services[id]; ok && s.Type == t {
		return s, nil
	}
	return nil, vendorRepo.ErrServiceNotFound
}

func (f *fakeVendors) GetSpecialist(_ context.Context, id string) (*domain.Specialist, error) {
	if s, ok := f.specialists[id]; ok {
		return s, nil
	}
	return nil, vendorRepo.ErrSpecialistNotFound
}

type movingClock struct{ now time.Time }

func (c *movingClock) Now() time.Time { return c.now }

// delayedTx сдвигает часы до запуска тела, как повтор после конфликта сериализации
type delayedTx struct {
	clock *movingClock
	delay time.Duration
}

func (tx delayedTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.clock.now = tx.clock.now.Add(tx.delay)
	return fn(ctx)
}

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct{ sent []domain.Notification }

func (f *fakeNotifier) Notify(_ context.Context, n domain.Notification) { f.sent = append(f.sent, n) }

type fixture struct {
	uc       *UseCase
	bookings *memBookings
	vendors  *fakeVendors
	notifier *fakeNotifier
}

func newFixture(now time.Time, throttle Throttle, cfg Config) *fixture {
	hours := make([]domain.OpeningHours, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		hours = append(hours, domain.OpeningHours{Day: day, Enabled: day != "Sunday", OpenTime: "09:00", CloseTime: "17:00"})
	}

	vendors := &fakeVendors{
		reg: &domain.Registration{
			ID: "reg-1", UserID: "owner-1", Role: domain.RoleOwner, DisplayName: "Glow",
			QRToken: ptr.Ptr(qrToken), OpeningHours: hours,
		},
		services: map[string]*domain.Service{
			"trim":   {ID: "trim", RegistrationID: "reg-1", Type: domain.ServiceTypeOwner, Name: "Trim", Price: 15, Duration: "30"},
			"broken": {ID: "broken", RegistrationID: "reg-1", Type: domain.ServiceTypeOwner, Name: "Broken", Duration: "half hour"},
			"alien":  {ID: "alien", RegistrationID: "reg-2", Type: domain.ServiceTypeOwner, Name: "Alien", Duration: "30"},
		},
		specialists: map[string]*domain.Specialist{
			"alex":  {ID: "alex", RegistrationID: "reg-1", OwnerUserID: "owner-1", Name: "Alex"},
			"robin": {ID: "robin", RegistrationID: "reg-1", OwnerUserID: "owner-1", Name: "Robin"},
			"kim":   {ID: "kim", RegistrationID: "reg-2", OwnerUserID: "owner-2", Name: "Kim"},
		},
	}
	bookings := &memBookings{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, vendors, throttle, notifier, passTx{}, nil, cfg, logger.NewWithWriter(io.Discard, "error")).
		WithTimeProvider(fixedTime{now: now})

	return &fixture{uc: uc, bookings: bookings, vendors: vendors, notifier: notifier}
}

func walkIn(phone string) *Request {
	return &Request{
		QRToken:       qrToken,
		ServiceID:     "trim",
		SpecialistID:  "alex",
		CustomerName:  "Jo Walker",
		CustomerPhone: phone,
	}
}

func existing(specialist string, start, end int) *domain.Booking {
	return &domain.Booking{
		ID: "existing-" + specialist, VendorID: "owner-1", SpecialistID: ptr.Ptr(specialist),
		Date: today, SlotStart: start, SlotEnd: end,
		Status: domain.StatusPending, Request: domain.RequestApproved, BookingSource: domain.SourceOnline,
	}
}

func TestExecute_FirstFitSequence(t *testing.T) {
	f := newFixture(morning, nil, Config{})
	f.bookings.items = append(f.bookings.items, existing("robin", 540, 570))

	first, err := f.uc.Execute(context.Background(), walkIn("+1 555 0100"))
	require.NoError(t, err)
	assert.Equal(t, 540, first.SlotStart)
	assert.Equal(t, 570, first.SlotEnd)
	assert.Equal(t, "9:00 AM - 9:30 AM", first.TimeRange)
	assert.Equal(t, 2, *first.QueueNumber)

	second, err := f.uc.Execute(context.Background(), walkIn("+1 555 0101"))
	require.NoError(t, err)
	assert.Equal(t, 570, second.SlotStart)
	assert.Equal(t, 600, second.SlotEnd)
	assert.Equal(t, 3, *second.QueueNumber)
}

func TestExecute_WalkInRecordShape(t *testing.T) {
	f := newFixture(morning, nil, Config{})

	b, err := f.uc.Execute(context.Background(), walkIn("+15550100"))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceWalkIn, b.BookingSource)
	assert.Equal(t, domain.RequestApproved, b.Request)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, today, b.Date)
	assert.Equal(t, "owner-1", b.VendorID)
	assert.Equal(t, "reg-1", b.RegistrationID)
	assert.Nil(t, b.CustomerID)
	assert.Equal(t, "Jo Walker", *b.CustomerName)
	assert.InDelta(t, 0.5, b.Duration, 0.0001)
	assert.Equal(t, qrToken, *b.QRToken)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "owner-1", f.notifier.sent[0].ReceiverID)
	assert.Equal(t, domain.NotificationWalkInCreated, f.notifier.sent[0].Type)
}

func TestExecute_SkipsBusyIntervalsOfSameSpecialist(t *testing.T) {
	f := newFixture(morning, nil, Config{})
	f.bookings.items = append(f.bookings.items, existing("alex", 540, 570))

	b, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.NoError(t, err)
	assert.Equal(t, 570, b.SlotStart)
}

func TestExecute_StartsFromNowWhenOpen(t *testing.T) {
	// 10:05, шаг отсчитывается от текущей минуты
	f := newFixture(time.Date(2026, 10, 16, 10, 5, 0, 0, time.Local), nil, Config{})

	b, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.NoError(t, err)
	assert.Equal(t, 605, b.SlotStart)
	assert.Equal(t, 635, b.SlotEnd)
}

func TestExecute_QueueNumberCountsDeletedRows(t *testing.T) {
	f := newFixture(morning, nil, Config{})
	deleted := existing("alex", 540, 570)
	deleted.IsDeleted = true
	f.bookings.items = append(f.bookings.items, deleted)

	b, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.NoError(t, err)
	assert.Equal(t, 540, b.SlotStart, "deleted booking frees its slot")
	assert.Equal(t, 2, *b.QueueNumber, "queue number never goes back")
}

func TestExecute_FullyBooked(t *testing.T) {
	// 16:45: 16:45 + 30 выходит за 17:00
	f := newFixture(time.Date(2026, 10, 16, 16, 45, 0, 0, time.Local), nil, Config{})

	_, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.ErrorIs(t, err, ErrFullyBooked)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_ClosedToday(t *testing.T) {
	// 2026-10-18 - воскресенье
	f := newFixture(time.Date(2026, 10, 18, 10, 0, 0, 0, time.Local), nil, Config{})

	_, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.ErrorIs(t, err, ErrClosedToday)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(r *Request)
		wantErr  error
		wantKind error
	}{
		{"unknown qr", func(r *Request) { r.QRToken = "nope" }, ErrInvalidQRCode, domain.ErrNotFound},
		{"unknown service", func(r *Request) { r.ServiceID = "nope" }, ErrServiceNotFound, domain.ErrNotFound},
		{"service of another salon", func(r *Request) { r.ServiceID = "alien" }, ErrServiceNotFound, domain.ErrNotFound},
		{"bad duration", func(r *Request) { r.ServiceID = "broken" }, ErrInvalidDuration, domain.ErrValidation},
		{"unknown specialist", func(r *Request) { r.SpecialistID = "nope" }, ErrSpecialistNotFound, domain.ErrNotFound},
		{"specialist of another salon", func(r *Request) { r.SpecialistID = "kim" }, ErrSpecialistNotFound, domain.ErrNotFound},
		{"missing specialist", func(r *Request) { r.SpecialistID = "" }, ErrInvalidInput, domain.ErrValidation},
		{"missing phone", func(r *Request) { r.CustomerPhone = " - " }, ErrInvalidInput, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(morning, nil, Config{})
			req := walkIn("+100")
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, domain.Kind(err))
			assert.Empty(t, f.bookings.items)
		})
	}
}

func TestExecute_ThrottlePerPhone(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	f := newFixture(morning, ratelimit.NewLimiter(client, "walkin"), Config{MaxPerPhone: 2, Window: time.Hour})

	for i := 0; i < 2; i++ {
		_, err := f.uc.Execute(context.Background(), walkIn("+1 (555) 0100"))
		require.NoError(t, err)
	}

	_, err = f.uc.Execute(context.Background(), walkIn("+15550100"))
	require.ErrorIs(t, err, ErrTooManyWalkIns)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Execute(context.Background(), walkIn("+15550199"))
	require.NoError(t, err, "other phone numbers are not affected")

	s.FastForward(time.Hour + time.Second)
	_, err = f.uc.Execute(context.Background(), walkIn("+15550100"))
	require.NoError(t, err)
}

func TestExecute_ThrottleOutageDoesNotBlock(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	s.Close()

	f := newFixture(morning, ratelimit.NewLimiter(client, "walkin"), Config{MaxPerPhone: 1, Window: time.Hour})

	_, err = f.uc.Execute(context.Background(), walkIn("+100"))
	require.NoError(t, err)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15550100", normalizePhone(" +1 (555) 01-00 "))
	assert.Equal(t, "5550100", normalizePhone("555+0100"))
	assert.Equal(t, "", normalizePhone(" - "))
}

func TestExecute_RetryReadsCurrentTime(t *testing.T) {
	f := newFixture(morning, nil, Config{})
	clock := &movingClock{now: time.Date(2026, 10, 16, 10, 5, 0, 0, time.Local)}
	f.uc.txManager = delayedTx{clock: clock, delay: time.Hour}
	f.uc.WithTimeProvider(clock)

	b, err := f.uc.Execute(context.Background(), walkIn("+100"))
	require.NoError(t, err)
	// Повтор в 11:05 берет слот от нового времени
	assert.Equal(t, 665, b.SlotStart)
	assert.Equal(t, 695, b.SlotEnd)
}

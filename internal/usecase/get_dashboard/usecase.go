package get_dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("get_dashboard: internal error")

// UseCase панель "сейчас / следующие / ожидают / предстоящие"
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	nextLineSize int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, nextLineSize int, logger Logger) *UseCase {
	if nextLineSize < 1 {
		nextLineSize = domain.DefaultNextLineSize
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		nextLineSize: nextLineSize,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// ForVendor панель одного исполнителя
func (uc *UseCase) ForVendor(ctx context.Context, vendorID string) (*Dashboard, error) {
	return uc.build(ctx, ptr.Ptr(vendorID))
}

// ServicingNow панель по всем исполнителям для администратора
func (uc *UseCase) ServicingNow(ctx context.Context) (*Dashboard, error) {
	return uc.build(ctx, nil)
}

func (uc *UseCase) build(ctx context.Context, vendorID *string) (*Dashboard, error) {
	// Время читается заново на каждый запрос
	now := uc.timeProvider.Now()
	today := slottime.DateOf(now)

	filter := domain.BookingFilter{
		VendorID:        vendorID,
		DateFrom:        ptr.Ptr(today),
		Requests:        []domain.RequestState{domain.RequestApproved},
		ExcludeStatuses: domain.TerminalStatuses,
	}

	bookings, err := uc.bookingRepo.List(ctx, filter, false)
	if err != nil {
		uc.logger.Error("GetDashboard: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	d := Classify(bookings, today, slottime.MinutesOf(now), uc.nextLineSize)

	scope := "all vendors"
	if vendorID != nil {
		scope = "vendor=" + *vendorID
	}
	uc.logger.Info("GetDashboard: %s: now=%d next=%d waiting=%d upcoming=%d",
		scope, len(d.ServicingNow), len(d.NextLine), len(d.WaitingToday), len(d.Upcoming))

	return &d, nil
}

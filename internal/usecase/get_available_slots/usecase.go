package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// UseCase use case для получения свободных слотов на дату
// Использует тот же пошаговый поиск, что и живая очередь
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, vendorRepo VendorRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: vendor=%s, service=%s, date=%s", req.VendorID, req.ServiceID, req.Date)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	from, err := searchStart(req.Date, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: date %q rejected: %v", req.Date, err)
		return nil, err
	}

	vendor, err := uc.vendorRepo.GetUser(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrUserNotFound) {
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get vendor=%s: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}
	if !vendor.IsVendor() {
		return nil, ErrVendorNotFound
	}

	reg, err := uc.vendorRepo.GetRegistrationByUser(ctx, vendor.ID, vendor.Role)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get registration for vendor=%s: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: failed to get registration: %v", ErrInternal, err)
	}

	service, err := uc.vendorRepo.GetService(ctx, serviceTypeFor(vendor.Role), req.ServiceID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.RegistrationID != reg.ID {
		return nil, ErrServiceNotFound
	}

	duration, err := service.DurationMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDuration, service.Duration)
	}

	scopes := []domain.ConflictScope{domain.VendorScope(vendor.ID)}
	if vendor.Role == domain.RoleOwner {
		scope, err := uc.specialistScope(ctx, req, vendor.ID)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}

	open, closeAt, err := dayBounds(reg, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: vendor=%s date=%s: %v", vendor.ID, req.Date, err)
		return nil, err
	}

	busy := make([]domain.Interval, 0)
	for _, scope := range scopes {
		intervals, err := uc.bookingRepo.ListBusyIntervals(ctx, scope, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list busy intervals for %s %s: %v", scope.Kind, scope.ID, err)
			return nil, fmt.Errorf("%w: failed to list busy intervals: %v", ErrInternal, err)
		}
		busy = append(busy, intervals...)
	}

	free := domain.FreeSlots(open, closeAt, from, duration, busy)
	slots := make([]Slot, 0, len(free))
	for _, s := range free {
		slots = append(slots, Slot{Start: s.Start, End: s.End, Time: slottime.FormatRange(s.Start, s.End)})
	}

	uc.logger.Info("GetAvailableSlots: vendor=%s date=%s, %d free slots", vendor.ID, req.Date, len(slots))

	return &Response{
		Date:            req.Date,
		VendorID:        vendor.ID,
		SpecialistID:    req.SpecialistID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) specialistScope(ctx context.Context, req *Request, ownerID string) (domain.ConflictScope, error) {
	if req.SpecialistID == nil || *req.SpecialistID == "" {
		return domain.ConflictScope{}, ErrSpecialistRequired
	}

	specialist, err := uc.vendorRepo.GetSpecialist(ctx, *req.SpecialistID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrSpecialistNotFound) {
			return domain.ConflictScope{}, ErrSpecialistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get specialist=%s: %v", *req.SpecialistID, err)
		return domain.ConflictScope{}, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}
	if !specialist.BelongsTo(ownerID) {
		return domain.ConflictScope{}, ErrSpecialistNotFound
	}
	return domain.SpecialistScope(specialist.ID), nil
}

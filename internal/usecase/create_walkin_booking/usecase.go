package create_walkin_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// UseCase use case записи в живую очередь по QR-коду
// Слот подбирается автоматически: первый свободный у специалиста начиная с текущего времени
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	throttle     Throttle
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
// throttle может быть nil, тогда ограничение частоты не применяется
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	throttle Throttle,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		throttle:     throttle,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute записывает клиента в живую очередь на сегодня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateWalkIn: service=%s, specialist=%s", req.ServiceID, req.SpecialistID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateWalkIn: validation failed: %v", err)
		return nil, err
	}

	// 1. Салон по токену QR-кода
	reg, err := uc.vendorRepo.GetRegistrationByQRToken(ctx, req.QRToken)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("CreateWalkIn: unknown QR token")
			return nil, ErrInvalidQRCode
		}
		uc.logger.Error("CreateWalkIn: failed to get registration by QR token: %v", err)
		return nil, fmt.Errorf("%w: failed to get registration: %v", ErrInternal, err)
	}

	if err := uc.checkThrottle(ctx, req); err != nil {
		return nil, err
	}

	// 2. Услуга и ее длительность
	service, err := uc.vendorRepo.GetService(ctx, domain.ServiceTypeOwner, req.ServiceID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateWalkIn: service=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateWalkIn: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.RegistrationID != reg.ID {
		uc.logger.Warn("CreateWalkIn: service=%s belongs to another salon", service.ID)
		return nil, ErrServiceNotFound
	}

	duration, err := service.DurationMinutes()
	if err != nil {
		uc.logger.Warn("CreateWalkIn: service=%s: %v", service.ID, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDuration, service.Duration)
	}

	// 3. Специалист этого салона
	specialist, err := uc.vendorRepo.GetSpecialist(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateWalkIn: specialist=%s not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateWalkIn: failed to get specialist=%s: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}
	if !specialist.BelongsTo(reg.UserID) {
		uc.logger.Warn("CreateWalkIn: specialist=%s does not work at salon=%s", specialist.ID, reg.ID)
		return nil, ErrSpecialistNotFound
	}

	var result *domain.Booking

	// 4-9. Подбор слота и сохранение в сериализуемой транзакции
	// Текущее время читается на каждой попытке, повтор после 40001 не должен видеть устаревшее время
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()
		today := slottime.DateOf(now)

		open, closeAt, err := todayBounds(reg, now)
		if err != nil {
			uc.logger.Warn("CreateWalkIn: salon=%s: %v", reg.ID, err)
			return err
		}

		busy, err := uc.bookingRepo.ListBusyIntervals(txCtx, domain.SpecialistScope(specialist.ID), today)
		if err != nil {
			uc.logger.Error("CreateWalkIn: failed to list busy intervals: %v", err)
			return fmt.Errorf("%w: list busy intervals: %w", ErrInternal, err)
		}

		slot, ok := domain.FirstFreeSlot(open, closeAt, slottime.MinutesOf(now), duration, busy)
		if !ok {
			uc.logger.Warn("CreateWalkIn: no free slot for specialist=%s on %s", specialist.ID, today)
			return ErrFullyBooked
		}

		count, err := uc.bookingRepo.CountByVendorAndDate(txCtx, reg.UserID, today)
		if err != nil {
			uc.logger.Error("CreateWalkIn: failed to count bookings: %v", err)
			return fmt.Errorf("%w: count bookings: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			CustomerName:   ptr.Ptr(strings.TrimSpace(req.CustomerName)),
			CustomerPhone:  ptr.Ptr(strings.TrimSpace(req.CustomerPhone)),
			VendorID:       reg.UserID,
			RegistrationID: reg.ID,
			ServiceID:      service.ID,
			ServiceType:    service.Type,
			ServiceName:    service.Name,
			SpecialistID:   ptr.Ptr(specialist.ID),
			Date:           today,
			TimeRange:      slottime.FormatRange(slot.Start, slot.End),
			SlotStart:      slot.Start,
			SlotEnd:        slot.End,
			Duration:       domain.DurationHours(slot.Start, slot.End),
			TotalPrice:     service.Price,
			Status:         domain.StatusPending,
			Request:        domain.RequestApproved,
			BookingSource:  domain.SourceWalkIn,
			QueueNumber:    ptr.Ptr(count + 1),
			QRToken:        ptr.Ptr(req.QRToken),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateWalkIn: slot %s taken concurrently", booking.TimeRange)
				return ErrFullyBooked
			}
			uc.logger.Error("CreateWalkIn: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(domain.SourceWalkIn))
	}
	uc.logger.Info("CreateWalkIn: booking id=%s, queue=%d, slot=%q", result.ID, *result.QueueNumber, result.TimeRange)

	uc.notifier.Notify(ctx, domain.Notification{
		ReceiverID: reg.UserID,
		BookingID:  result.ID,
		Title:      "New walk-in customer",
		Message: fmt.Sprintf("%s joined the queue (#%d) for %s at %s",
			*result.CustomerName, *result.QueueNumber, result.ServiceName, result.TimeRange),
		Type: domain.NotificationWalkInCreated,
	})

	return result, nil
}

// checkThrottle ограничивает число записей с одного телефона в окне
// Недоступность Redis запись не блокирует
func (uc *UseCase) checkThrottle(ctx context.Context, req *Request) error {
	if uc.throttle == nil || uc.cfg.MaxPerPhone <= 0 {
		return nil
	}

	key := req.QRToken + ":" + normalizePhone(req.CustomerPhone)
	allowed, err := uc.throttle.Allow(ctx, key, uc.cfg.MaxPerPhone, uc.cfg.Window)
	if err != nil {
		uc.logger.Warn("CreateWalkIn: throttle unavailable, skipping: %v", err)
		return nil
	}
	if !allowed {
		uc.logger.Warn("CreateWalkIn: too many walk-ins for one phone")
		return ErrTooManyWalkIns
	}
	return nil
}

func validateRequest(req *Request) error {
	switch {
	case strings.TrimSpace(req.QRToken) == "":
		return fmt.Errorf("%w: qrToken is required", ErrInvalidInput)
	case strings.TrimSpace(req.ServiceID) == "":
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	case strings.TrimSpace(req.SpecialistID) == "":
		return fmt.Errorf("%w: specialistId is required", ErrInvalidInput)
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case normalizePhone(req.CustomerPhone) == "":
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	return nil
}

// normalizePhone оставляет только цифры и ведущий плюс
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// serviceResolver загружает услугу из каталога одного типа
type serviceResolver func(ctx context.Context, id string) (*domain.Service, error)

// UseCase use case онлайн-бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	conflicts    ConflictDetector
	files        FileStorage
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger

	services map[domain.ServiceType]serviceResolver
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	conflicts ConflictDetector,
	files FileStorage,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	uc := &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		conflicts:    conflicts,
		files:        files,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
	uc.services = map[domain.ServiceType]serviceResolver{
		domain.ServiceTypeOwner:      vendorRepo.GetOwnerService,
		domain.ServiceTypeFreelancer: vendorRepo.GetFreelancerService,
	}
	return uc
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает онлайн-бронирование
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// изображения загружаются один раз даже при повторе транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: customer=%s, vendor=%s, service=%s/%s, date=%s, time=%q",
		req.CustomerID, req.VendorID, req.ServiceType, req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных и времени
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	slotStart, slotEnd, err := parseSlot(req.Time)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time %q: %v", req.Time, err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: invalid date %q: %v", req.Date, err)
		return nil, err
	}

	// 3. Исполнитель и клиент
	vendor, err := uc.getUser(ctx, req.VendorID, ErrVendorNotFound)
	if err != nil {
		return nil, err
	}
	if !vendor.IsVendor() {
		uc.logger.Warn("CreateBooking: user=%s has role %s", vendor.ID, vendor.Role)
		return nil, ErrNotAVendor
	}

	customer, err := uc.getUser(ctx, req.CustomerID, ErrCustomerNotFound)
	if err != nil {
		return nil, err
	}

	// 4. Услуга из каталога выбранного типа
	resolve, ok := uc.services[req.ServiceType]
	if !ok {
		uc.logger.Warn("CreateBooking: unknown service type %q", req.ServiceType)
		return nil, ErrUnknownServiceType
	}

	service, err := resolve(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service %s/%s not found", req.ServiceType, req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Профиль исполнителя с расписанием
	reg, err := uc.vendorRepo.GetRegistrationByUser(ctx, vendor.ID, vendor.Role)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("CreateBooking: registration for vendor=%s not found", vendor.ID)
			return nil, ErrRegistrationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get registration for vendor=%s: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: failed to get registration: %v", ErrInternal, err)
	}

	if err := validateServiceOwnership(service, reg); err != nil {
		uc.logger.Warn("CreateBooking: service=%s vendor=%s: %v", service.ID, vendor.ID, err)
		return nil, err
	}

	addOns := normalizeAddOns(req.AddOns)
	price := totalPrice(service, addOns)
	if err := validatePrice(req.Price, price); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		uploaded []domain.Image
	)

	// 6-10. Проверки слота и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		specialistID, err := uc.checkRoleRules(txCtx, req, vendor, reg, slotStart, slotEnd)
		if err != nil {
			return err
		}

		busy, err := uc.conflicts.HasConflict(txCtx, domain.VendorScope(vendor.ID), req.Date, slotStart, slotEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: vendor conflict check failed: %v", err)
			return fmt.Errorf("%w: vendor conflict check: %w", ErrInternal, err)
		}
		if busy {
			uc.logger.Warn("CreateBooking: vendor=%s already booked on %s %q", vendor.ID, req.Date, req.Time)
			return ErrVendorBooked
		}

		// 9. Изображения обязательны, загружаем только при первой попытке
		if uploaded == nil {
			if len(req.Images) == 0 {
				return ErrNoImages
			}
			images, err := uc.files.Save(ctx, req.Images)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to upload images: %v", err)
				return fmt.Errorf("%w: upload images: %v", ErrInternal, err)
			}
			uploaded = images
		}

		// 10. Сохраняем бронирование
		booking := &domain.Booking{
			CustomerID:      ptr.Ptr(customer.ID),
			CustomerName:    ptr.Ptr(customer.FullName),
			CustomerPhone:   ptr.Ptr(customer.Phone),
			VendorID:        vendor.ID,
			RegistrationID:  reg.ID,
			ServiceID:       service.ID,
			ServiceType:     service.Type,
			ServiceName:     service.Name,
			SpecialistID:    specialistID,
			AddOns:          addOns,
			Date:            req.Date,
			TimeRange:       req.Time,
			SlotStart:       slotStart,
			SlotEnd:         slotEnd,
			Duration:        domain.DurationHours(slotStart, slotEnd),
			TotalPrice:      price,
			Images:          uploaded,
			Notes:           req.Notes,
			Email:           req.Email,
			ServiceLocation: req.Location,
			Status:          domain.StatusPending,
			Request:         domain.RequestPending,
			BookingSource:   domain.SourceOnline,
			IsPaid:          false,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken concurrently, vendor=%s date=%s", vendor.ID, req.Date)
				return ErrVendorBooked
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.cleanupImages(ctx, uploaded)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(domain.SourceOnline))
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 11. Уведомления, ошибки только логируются
	uc.notifier.Notify(ctx, domain.Notification{
		ReceiverID: customer.ID,
		BookingID:  result.ID,
		Title:      "Booking confirmed",
		Message:    fmt.Sprintf("Your booking for %s on %s at %s has been created", result.ServiceName, result.Date, result.TimeRange),
		Type:       domain.NotificationBookingCreated,
	})
	uc.notifier.Notify(ctx, domain.Notification{
		ReceiverID: vendor.ID,
		BookingID:  result.ID,
		Title:      "New booking received",
		Message:    fmt.Sprintf("%s booked %s on %s at %s", customer.FullName, result.ServiceName, result.Date, result.TimeRange),
		Type:       domain.NotificationBookingReceived,
	})

	return result, nil
}

// checkRoleRules проверки, зависящие от роли исполнителя (шаги 6-7)
// Возвращает ID специалиста, который нужно записать в бронирование
func (uc *UseCase) checkRoleRules(
	ctx context.Context,
	req *Request,
	vendor *domain.User,
	reg *domain.Registration,
	slotStart, slotEnd int,
) (*string, error) {
	if vendor.Role == domain.RoleFreelancer {
		if req.SpecialistID != nil && *req.SpecialistID != "" {
			return nil, ErrSpecialistNotAllowed
		}
		return nil, nil
	}

	if req.SpecialistID == nil || *req.SpecialistID == "" {
		return nil, ErrSpecialistRequired
	}

	specialist, err := uc.vendorRepo.GetSpecialist(ctx, *req.SpecialistID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrSpecialistNotFound) {
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get specialist id=%s: %v", *req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}
	if !specialist.BelongsTo(vendor.ID) {
		uc.logger.Warn("CreateBooking: specialist=%s does not belong to vendor=%s", specialist.ID, vendor.ID)
		return nil, ErrSpecialistNotFound
	}

	if err := validateBusinessHours(reg, req.Date, slotStart, slotEnd); err != nil {
		uc.logger.Warn("CreateBooking: vendor=%s date=%s: %v", vendor.ID, req.Date, err)
		return nil, err
	}

	busy, err := uc.conflicts.HasConflict(ctx, domain.SpecialistScope(specialist.ID), req.Date, slotStart, slotEnd)
	if err != nil {
		uc.logger.Error("CreateBooking: specialist conflict check failed: %v", err)
		return nil, fmt.Errorf("%w: specialist conflict check: %w", ErrInternal, err)
	}
	if busy {
		uc.logger.Warn("CreateBooking: specialist=%s already booked on %s %q", specialist.ID, req.Date, req.Time)
		return nil, ErrSpecialistBooked
	}

	return ptr.Ptr(specialist.ID), nil
}

func (uc *UseCase) getUser(ctx context.Context, id string, notFound error) (*domain.User, error) {
	user, err := uc.vendorRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user=%s not found", id)
			return nil, notFound
		}
		uc.logger.Error("CreateBooking: failed to get user=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}

// cleanupImages удаляет загруженные файлы, если бронирование не сохранилось
func (uc *UseCase) cleanupImages(ctx context.Context, images []domain.Image) {
	if len(images) == 0 {
		return
	}
	if err := uc.files.Delete(context.WithoutCancel(ctx), images); err != nil {
		uc.logger.Error("CreateBooking: failed to remove %d orphaned images: %v", len(images), err)
	}
}

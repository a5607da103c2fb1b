package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// Service сервис чтения броней и переходов их жизненного цикла
type Service struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Видеть бронь могут только клиент, исполнитель и администратор
func (s *Service) GetByID(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !booking.IsParty(actor.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings история клиента, статус обязателен
func (s *Service) GetCustomerBookings(ctx context.Context, customerID, status string) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%s", customerID, status)

	if !domain.IsValidStatus(status) {
		s.logger.Warn("GetCustomerBookings: invalid status=%q for customer=%s", status, customerID)
		return nil, ErrInvalidStatus
	}

	filter := domain.BookingFilter{
		CustomerID: ptr.Ptr(customerID),
		Statuses:   []domain.BookingStatus{domain.BookingStatus(status)},
	}

	return s.list(ctx, "GetCustomerBookings", filter, true)
}

// GetVendorHistory все брони исполнителя, новые сверху, статус опционален
func (s *Service) GetVendorHistory(ctx context.Context, vendorID string, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetVendorHistory: fetching bookings for vendor=%s", vendorID)

	filter := domain.BookingFilter{VendorID: ptr.Ptr(vendorID)}
	if status != nil {
		if !domain.IsValidStatus(*status) {
			return nil, ErrInvalidStatus
		}
		filter.Statuses = []domain.BookingStatus{domain.BookingStatus(*status)}
	}

	return s.list(ctx, "GetVendorHistory", filter, true)
}

// GetVendorRequests заявки, ожидающие решения исполнителя
func (s *Service) GetVendorRequests(ctx context.Context, vendorID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetVendorRequests: fetching pending requests for vendor=%s", vendorID)

	filter := domain.BookingFilter{
		VendorID:        ptr.Ptr(vendorID),
		Requests:        []domain.RequestState{domain.RequestPending},
		ExcludeStatuses: domain.TerminalStatuses,
	}

	return s.list(ctx, "GetVendorRequests", filter, false)
}

// List список всех броней для администратора с пагинацией
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingFilter{
		VendorID: req.VendorID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = domain.DefaultPageLimit
	}
	if filter.Limit > domain.MaxPageLimit {
		return nil, fmt.Errorf("%w: limit must be at most %d", ErrInvalidInput, domain.MaxPageLimit)
	}
	if req.Status != nil {
		if !domain.IsValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		filter.Statuses = []domain.BookingStatus{domain.BookingStatus(*req.Status)}
	}

	s.logger.Info("List: limit=%d offset=%d", filter.Limit, filter.Offset)
	return s.list(ctx, "List", filter, true)
}

// Approve принимает заявку: request=approved и status=in-process одним обновлением
func (s *Service) Approve(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return s.transition(ctx, "Approve", id, actor, vendorOnly, func(txCtx context.Context, b *domain.Booking) error {
		// Время читаем после блокировки строки
		now := s.timeProvider.Now()
		today, nowMinutes := slottime.DateOf(now), slottime.MinutesOf(now)

		if err := b.CanApprove(today, nowMinutes); err != nil {
			return err
		}
		status := domain.StatusInProcess
		if err := s.bookingRepo.UpdateRequest(txCtx, b.ID, domain.RequestApproved, &status); err != nil {
			return err
		}
		b.Request, b.Status = domain.RequestApproved, status
		return nil
	})
}

// Decline отклоняет заявку
func (s *Service) Decline(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return s.transition(ctx, "Decline", id, actor, vendorOnly, func(txCtx context.Context, b *domain.Booking) error {
		if err := b.CanDecline(); err != nil {
			return err
		}
		if err := s.bookingRepo.UpdateRequest(txCtx, b.ID, domain.RequestDecline, nil); err != nil {
			return err
		}
		b.Request = domain.RequestDecline
		return nil
	})
}

// Complete отмечает услугу оказанной
func (s *Service) Complete(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return s.setStatus(ctx, "Complete", id, actor, domain.StatusCompleted)
}

// Cancel отменяет бронирование, слот освобождается
func (s *Service) Cancel(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	return s.setStatus(ctx, "Cancel", id, actor, domain.StatusCanceled)
}

// Settle отмечает бронь оплаченной по событию платежного шлюза
func (s *Service) Settle(ctx context.Context, id string) error {
	if err := s.bookingRepo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Settle: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			s.logger.Warn("Settle: booking id=%s overlaps an active booking", id)
			return ErrSlotTaken
		}
		s.logger.Error("Settle: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Settle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Settle: booking id=%s marked as paid", id)
	return nil
}

// Delete мягко удаляет бронь, доступно администратору
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.bookingRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted", id)
	return nil
}

// Вспомогательные методы

type accessRule func(b *domain.Booking, actor models.Actor) bool

// vendorOnly решение по заявке принимает исполнитель или администратор
func vendorOnly(b *domain.Booking, actor models.Actor) bool {
	return actor.IsAdmin() || b.VendorID == actor.UserID
}

// partyOnly клиент, исполнитель или администратор
func partyOnly(b *domain.Booking, actor models.Actor) bool {
	return actor.IsAdmin() || b.IsParty(actor.UserID)
}

func (s *Service) setStatus(ctx context.Context, op, id string, actor models.Actor, status domain.BookingStatus) (*models.BookingResponse, error) {
	return s.transition(ctx, op, id, actor, partyOnly, func(txCtx context.Context, b *domain.Booking) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, b.ID, status); err != nil {
			return err
		}
		b.Status = status
		return nil
	})
}

// transition блокирует строку брони, проверяет права, применяет apply
// и после фиксации уведомляет обе стороны
func (s *Service) transition(
	ctx context.Context,
	op, id string,
	actor models.Actor,
	allowed accessRule,
	apply func(txCtx context.Context, b *domain.Booking) error,
) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%s by user=%s", op, id, actor.UserID)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронь под блокировкой
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. Проверяем права
		if !allowed(b, actor) {
			return ErrAccessDenied
		}

		// 3. Применяем переход
		if err := apply(txCtx, b); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, actor.UserID, id)
			return nil, ErrAccessDenied
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			s.logger.Warn("%s: booking id=%s overlaps an active booking", op, id)
			return nil, ErrSlotTaken
		case domain.Kind(err) != nil:
			s.logger.Warn("%s: booking id=%s rejected: %v", op, id, err)
			return nil, err
		default:
			s.logger.Error("%s: failed for booking id=%s: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: booking id=%s request=%s status=%s", op, id, booking.Request, booking.Status)
	s.notifyParties(ctx, booking, op)

	return models.FromDomainBooking(booking), nil
}

var transitionNotifications = map[string]struct {
	kind  domain.NotificationType
	title string
}{
	"Approve":  {domain.NotificationBookingApproved, "Booking approved"},
	"Decline":  {domain.NotificationBookingDeclined, "Booking declined"},
	"Complete": {domain.NotificationBookingCompleted, "Booking completed"},
	"Cancel":   {domain.NotificationBookingCanceled, "Booking canceled"},
}

func (s *Service) notifyParties(ctx context.Context, b *domain.Booking, op string) {
	meta, ok := transitionNotifications[op]
	if !ok {
		return
	}

	message := fmt.Sprintf("%s on %s, %s", b.ServiceName, b.Date, b.TimeRange)

	receivers := []string{b.VendorID}
	if b.CustomerID != nil {
		// У записи на месте аккаунта клиента нет
		receivers = append(receivers, *b.CustomerID)
	}

	for _, receiver := range receivers {
		s.notifier.Notify(ctx, domain.Notification{
			ReceiverID: receiver,
			BookingID:  b.ID,
			Title:      meta.title,
			Message:    message,
			Type:       meta.kind,
		})
	}
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingFilter, desc bool) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter, desc)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

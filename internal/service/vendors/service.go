package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/internal/service/vendors/models"
)

// Service сервис профиля исполнителя: расписание, специалисты, данные для записи на месте
type Service struct {
	vendorRepo VendorRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса
func NewService(vendorRepo VendorRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetOpeningHours расписание исполнителя по ID пользователя
func (s *Service) GetOpeningHours(ctx context.Context, vendorID string) (*models.OpeningHoursResponse, error) {
	reg, err := s.registrationOf(ctx, "GetOpeningHours", vendorID)
	if err != nil {
		return nil, err
	}

	return &models.OpeningHoursResponse{
		VendorID: vendorID,
		Days:     models.FromDomainHours(reg.OpeningHours),
	}, nil
}

// ReplaceOpeningHours заменяет недельное расписание целиком
func (s *Service) ReplaceOpeningHours(ctx context.Context, vendorID string, role domain.Role, days []models.Day) (*models.OpeningHoursResponse, error) {
	s.logger.Info("ReplaceOpeningHours: vendor=%s days=%d", vendorID, len(days))

	// 1. Валидируем расписание
	hours := models.ToDomainHours(days)
	if err := validateSchedule(hours); err != nil {
		s.logger.Warn("ReplaceOpeningHours: invalid schedule for vendor=%s: %v", vendorID, err)
		return nil, err
	}

	// 2. Удаляем старое и пишем новое в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reg, err := s.vendorRepo.GetRegistrationByUser(txCtx, vendorID, role)
		if err != nil {
			return err
		}
		return s.vendorRepo.ReplaceOpeningHours(txCtx, reg.ID, hours)
	})
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			s.logger.Warn("ReplaceOpeningHours: vendor=%s has no registration", vendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("ReplaceOpeningHours: failed for vendor=%s: %v", vendorID, err)
		return nil, fmt.Errorf("%w: ReplaceOpeningHours - %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceOpeningHours: schedule updated for vendor=%s", vendorID)
	return &models.OpeningHoursResponse{VendorID: vendorID, Days: models.FromDomainHours(hours)}, nil
}

// ListSpecialists специалисты салона владельца
func (s *Service) ListSpecialists(ctx context.Context, ownerID string) ([]models.SpecialistResponse, error) {
	specialists, err := s.vendorRepo.ListSpecialists(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListSpecialists: failed for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListSpecialists - %v", ErrInternal, err)
	}
	return models.FromDomainSpecialists(specialists), nil
}

// AddSpecialist добавляет специалиста в салон владельца
func (s *Service) AddSpecialist(ctx context.Context, ownerID string, req *models.AddSpecialistRequest) (*models.SpecialistResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	reg, err := s.vendorRepo.GetRegistrationByUser(ctx, ownerID, domain.RoleOwner)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			s.logger.Warn("AddSpecialist: owner=%s has no salon", ownerID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("AddSpecialist: failed to get salon of owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: AddSpecialist - %v", ErrInternal, err)
	}

	created, err := s.vendorRepo.CreateSpecialist(ctx, &domain.Specialist{
		RegistrationID: reg.ID,
		OwnerUserID:    ownerID,
		Name:           name,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		s.logger.Error("AddSpecialist: failed to create specialist for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: AddSpecialist - %v", ErrInternal, err)
	}

	s.logger.Info("AddSpecialist: specialist id=%s added to salon=%s", created.ID, reg.ID)
	return &models.SpecialistResponse{ID: created.ID, Name: created.Name, ImageURL: created.ImageURL}, nil
}

// GetWalkInDetails данные салона для публичной формы записи по QR-коду
func (s *Service) GetWalkInDetails(ctx context.Context, token string) (*models.WalkInDetailsResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidQRCode
	}

	reg, err := s.vendorRepo.GetRegistrationByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			s.logger.Warn("GetWalkInDetails: unknown token")
			return nil, ErrInvalidQRCode
		}
		s.logger.Error("GetWalkInDetails: failed to resolve token: %v", err)
		return nil, fmt.Errorf("%w: GetWalkInDetails - %v", ErrInternal, err)
	}

	services, err := s.vendorRepo.ListServices(ctx, reg.ID)
	if err != nil {
		s.logger.Error("GetWalkInDetails: failed to list services of salon=%s: %v", reg.ID, err)
		return nil, fmt.Errorf("%w: GetWalkInDetails - %v", ErrInternal, err)
	}

	specialists, err := s.vendorRepo.ListSpecialists(ctx, reg.UserID)
	if err != nil {
		s.logger.Error("GetWalkInDetails: failed to list specialists of salon=%s: %v", reg.ID, err)
		return nil, fmt.Errorf("%w: GetWalkInDetails - %v", ErrInternal, err)
	}

	return &models.WalkInDetailsResponse{
		SalonName:    reg.DisplayName,
		VendorID:     reg.UserID,
		Services:     models.FromDomainServices(services),
		Specialists:  models.FromDomainSpecialists(specialists),
		OpeningHours: models.FromDomainHours(reg.OpeningHours),
	}, nil
}

// registrationOf находит профиль исполнителя по ID пользователя и его роли
func (s *Service) registrationOf(ctx context.Context, op, vendorID string) (*domain.Registration, error) {
	user, err := s.vendorRepo.GetUser(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user=%s not found", op, vendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("%s: failed to get user=%s: %v", op, vendorID, err)
		return nil, fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
	if !user.IsVendor() {
		s.logger.Warn("%s: user=%s is not a vendor", op, vendorID)
		return nil, ErrVendorNotFound
	}

	reg, err := s.vendorRepo.GetRegistrationByUser(ctx, user.ID, user.Role)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrRegistrationNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("%s: failed to get registration of user=%s: %v", op, vendorID, err)
		return nil, fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
	return reg, nil
}

// validateSchedule каждый день недели не больше одного раза,
// у рабочих дней время закрытия позже открытия
func validateSchedule(hours []domain.OpeningHours) error {
	seen := make(map[string]bool, len(hours))
	for _, h := range hours {
		if !domain.IsWeekday(h.Day) {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, h.Day)
		}
		if seen[h.Day] {
			return fmt.Errorf("%w: duplicate day %q", ErrInvalidSchedule, h.Day)
		}
		seen[h.Day] = true

		if !h.Enabled {
			continue
		}
		if _, _, err := h.Bounds(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, h.Day, err)
		}
	}
	return nil
}

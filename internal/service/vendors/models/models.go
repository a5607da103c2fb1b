package models

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Day один день недельного расписания
type Day struct {
	Day       string `json:"day" validate:"required"`
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// OpeningHoursResponse расписание исполнителя
type OpeningHoursResponse struct {
	VendorID string `json:"vendorId"`
	Days     []Day  `json:"days"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes string  `json:"duration"`
}

// SpecialistResponse специалист салона
type SpecialistResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// WalkInDetailsResponse данные формы записи на месте
type WalkInDetailsResponse struct {
	SalonName    string               `json:"salonName"`
	VendorID     string               `json:"vendorId"`
	Services     []ServiceResponse    `json:"services"`
	Specialists  []SpecialistResponse `json:"specialists"`
	OpeningHours []Day                `json:"openingHours"`
}

// AddSpecialistRequest запрос на добавление специалиста
type AddSpecialistRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// FromDomainHours конвертирует расписание в DTO
func FromDomainHours(hours []domain.OpeningHours) []Day {
	days := make([]Day, 0, len(hours))
	for _, h := range hours {
		days = append(days, Day{Day: h.Day, Enabled: h.Enabled, OpenTime: h.OpenTime, CloseTime: h.CloseTime})
	}
	return days
}

// ToDomainHours конвертирует DTO в расписание
func ToDomainHours(days []Day) []domain.OpeningHours {
	hours := make([]domain.OpeningHours, 0, len(days))
	for _, d := range days {
		hours = append(hours, domain.OpeningHours{Day: d.Day, Enabled: d.Enabled, OpenTime: d.OpenTime, CloseTime: d.CloseTime})
	}
	return hours
}

// FromDomainSpecialists конвертирует специалистов в DTO
func FromDomainSpecialists(specialists []*domain.Specialist) []SpecialistResponse {
	out := make([]SpecialistResponse, 0, len(specialists))
	for _, s := range specialists {
		out = append(out, SpecialistResponse{ID: s.ID, Name: s.Name, ImageURL: s.ImageURL})
	}
	return out
}

// FromDomainServices конвертирует услуги в DTO
func FromDomainServices(services []*domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price, DurationMinutes: s.Duration})
	}
	return out
}

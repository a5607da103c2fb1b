package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Actor пользователь, выполняющий действие
type Actor struct {
	UserID string
	Role   domain.Role
}

// IsAdmin возвращает true для администратора
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// ListRequest запрос списка броней администратора
type ListRequest struct {
	VendorID *string
	Status   *string
	Limit    uint64
	Offset   uint64
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string  `json:"id"`
	CustomerID    *string `json:"customerId,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Email         *string `json:"email,omitempty"`

	VendorID     string         `json:"vendorId"`
	ServiceID    string         `json:"serviceId"`
	ServiceType  string         `json:"serviceType"`
	ServiceName  string         `json:"serviceName"`
	SpecialistID *string        `json:"specialistId,omitempty"`
	AddOns       []domain.AddOn `json:"addOns"`

	Date      string  `json:"date"` // "2026-10-16"
	Time      string  `json:"time"` // "10:00 AM - 11:00 AM"
	SlotStart int     `json:"slotStart"`
	SlotEnd   int     `json:"slotEnd"`
	Duration  float64 `json:"duration"`

	TotalPrice float64        `json:"totalPrice"`
	Images     []domain.Image `json:"images"`
	Notes      *string        `json:"notes,omitempty"`

	ServiceLocation *string `json:"serviceLocation,omitempty"`

	Status        string `json:"status"`
	Request       string `json:"request"`
	BookingSource string `json:"bookingSource"`
	QueueNumber   *int   `json:"queueNumber,omitempty"`
	IsPaid        bool   `json:"isPaid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		Email:           b.Email,
		VendorID:        b.VendorID,
		ServiceID:       b.ServiceID,
		ServiceType:     string(b.ServiceType),
		ServiceName:     b.ServiceName,
		SpecialistID:    b.SpecialistID,
		AddOns:          b.AddOns,
		Date:            b.Date,
		Time:            b.TimeRange,
		SlotStart:       b.SlotStart,
		SlotEnd:         b.SlotEnd,
		Duration:        b.Duration,
		TotalPrice:      b.TotalPrice,
		Images:          b.Images,
		Notes:           b.Notes,
		ServiceLocation: b.ServiceLocation,
		Status:          string(b.Status),
		Request:         string(b.Request),
		BookingSource:   string(b.BookingSource),
		QueueNumber:     b.QueueNumber,
		IsPaid:          b.IsPaid,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Пустые списки отдаем как [], а не null
	if resp.AddOns == nil {
		resp.AddOns = []domain.AddOn{}
	}
	if resp.Images == nil {
		resp.Images = []domain.Image{}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

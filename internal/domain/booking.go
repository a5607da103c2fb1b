package domain

import "time"

// BookingStatus represents the service status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusInProcess BookingStatus = "in-process"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
)

// RequestState represents the vendor's decision on a booking request
type RequestState string

const (
	RequestPending  RequestState = "pending"
	RequestApproved RequestState = "approved"
	RequestDecline  RequestState = "decline"
)

// BookingSource tells how the booking was made
type BookingSource string

const (
	SourceOnline BookingSource = "online"
	SourceWalkIn BookingSource = "walkin"
)

// ServiceType tags which catalog the booked service comes from
type ServiceType string

const (
	ServiceTypeOwner      ServiceType = "OwnerService"
	ServiceTypeFreelancer ServiceType = "FreelancerService"
)

// AddOn is an extra service attached to a booking
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Total returns price multiplied by quantity
func (a AddOn) Total() float64 {
	return a.Price * float64(a.Qty)
}

// Image is a stored file attached to a booking
type Image struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Booking represents a reservation of one time interval with a vendor
// (and optionally a specialist) on one calendar date.
// SlotStart and SlotEnd are minutes since local midnight, SlotStart < SlotEnd.
type Booking struct {
	ID string

	// Online bookings reference a customer account, walk-ins carry name and phone
	CustomerID    *string
	CustomerName  *string
	CustomerPhone *string
	Email         *string

	VendorID       string
	RegistrationID string
	ServiceID      string
	ServiceType    ServiceType
	ServiceName    string
	SpecialistID   *string
	AddOns         []AddOn

	Date      string // YYYY-MM-DD
	TimeRange string // "h:mm AM - h:mm PM"
	SlotStart int
	SlotEnd   int
	Duration  float64 // часы

	TotalPrice float64
	Images     []Image
	Notes      *string

	ServiceLocation *string

	Status        BookingStatus
	Request       RequestState
	BookingSource BookingSource
	QueueNumber   *int
	QRToken       *string
	IsPaid        bool
	IsDeleted     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked slot as an interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.SlotStart, End: b.SlotEnd}
}

// IsActive reports whether the booking still holds its slot.
// Deleted, canceled and declined bookings free the slot.
func (b *Booking) IsActive() bool {
	return !b.IsDeleted && b.Status != StatusCanceled && b.Request != RequestDecline
}

// IsClosed returns true if the booking reached a terminal status
func (b *Booking) IsClosed() bool {
	return b.Status == StatusCompleted || b.Status == StatusCanceled
}

// IsParty reports whether the user is the customer or the vendor of the booking
func (b *Booking) IsParty(userID string) bool {
	if b.VendorID == userID {
		return true
	}
	return b.CustomerID != nil && *b.CustomerID == userID
}

// DurationHours converts a slot length in minutes to hours
func DurationHours(slotStart, slotEnd int) float64 {
	return float64(slotEnd-slotStart) / 60
}

// BookingFilter describes a bookings query
type BookingFilter struct {
	VendorID     *string
	CustomerID   *string
	SpecialistID *string

	DateFrom *string
	DateTo   *string

	Statuses        []BookingStatus
	ExcludeStatuses []BookingStatus
	Requests        []RequestState
	Source          *BookingSource

	IncludeDeleted bool

	Limit  uint64
	Offset uint64
}

// IsValidStatus checks a status string
func IsValidStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusPending, StatusInProcess, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsValidRequest checks a request state string
func IsValidRequest(s string) bool {
	switch RequestState(s) {
	case RequestPending, RequestApproved, RequestDecline:
		return true
	}
	return false
}

package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// Role is an account role
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleOwner      Role = "owner"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// User is an account as seen by the booking service
type User struct {
	ID         string
	FullName   string
	Email      string
	Phone      string
	Role       Role
	PushTokens []string
}

// IsVendor returns true for salon owners and freelancers
func (u *User) IsVendor() bool {
	return u.Role == RoleOwner || u.Role == RoleFreelancer
}

// HasPushToken returns true if the user can receive push notifications
func (u *User) HasPushToken() bool {
	return len(u.PushTokens) > 0
}

// Registration is the business profile of a vendor
type Registration struct {
	ID           string
	UserID       string
	Role         Role
	DisplayName  string // название салона или имя мастера
	QRToken      *string
	OpeningHours []OpeningHours
}

// HoursFor returns the opening hours entry for a weekday ("Monday".."Sunday")
func (r *Registration) HoursFor(weekday string) (OpeningHours, bool) {
	for _, h := range r.OpeningHours {
		if strings.EqualFold(h.Day, weekday) {
			return h, true
		}
	}
	return OpeningHours{}, false
}

// OpeningHours is one weekday of a vendor's weekly schedule
type OpeningHours struct {
	Day       string
	Enabled   bool
	OpenTime  string // "09:00" или "9:00 AM"
	CloseTime string
}

// Bounds returns opening and closing time in minutes since midnight
func (h OpeningHours) Bounds() (open, close int, err error) {
	open, err = slottime.ParseClock(h.OpenTime)
	if err != nil {
		return 0, 0, fmt.Errorf("open time: %w", err)
	}
	close, err = slottime.ParseClock(h.CloseTime)
	if err != nil {
		return 0, 0, fmt.Errorf("close time: %w", err)
	}
	if close <= open {
		return 0, 0, fmt.Errorf("close time %q is not after open time %q", h.CloseTime, h.OpenTime)
	}
	return open, close, nil
}

// Weekdays in calendar order, used to validate schedules
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsWeekday checks a weekday name
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Service is a catalog entry of an owner or a freelancer
type Service struct {
	ID             string
	RegistrationID string
	Type           ServiceType
	Name           string
	Price          float64
	Duration       string // минуты, как хранятся в каталоге
}

// DurationMinutes parses the stored duration, it must be a positive integer
func (s *Service) DurationMinutes() (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s.Duration))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid service duration %q", ErrValidation, s.Duration)
	}
	return d, nil
}

// Specialist is a staff member of a salon
type Specialist struct {
	ID             string
	RegistrationID string
	OwnerUserID    string
	Name           string
	ImageURL       string
}

// BelongsTo reports whether the specialist works for the owner
func (s *Specialist) BelongsTo(ownerUserID string) bool {
	return s.OwnerUserID == ownerUserID
}

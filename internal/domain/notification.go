package domain

import "time"

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingReceived  NotificationType = "booking_received"
	NotificationBookingApproved  NotificationType = "booking_approved"
	NotificationBookingDeclined  NotificationType = "booking_declined"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationBookingCanceled  NotificationType = "booking_canceled"
	NotificationWalkInCreated    NotificationType = "walkin_created"
)

// Notification is a message to one user about a booking
type Notification struct {
	ID         string
	ReceiverID string
	BookingID  string
	Title      string
	Message    string
	Type       NotificationType
	IsRead     bool
	CreatedAt  time.Time
}

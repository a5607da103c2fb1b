package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Dashboard defaults
const (
	DefaultNextLineSize = 4
)

// Pagination limits for list endpoints
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// TerminalStatuses statuses after which the booking is no longer served
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCanceled,
}

package get_dashboard

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	dashboardUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_dashboard"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	ServicingNow []models.BookingResponse `json:"servicingNow"`
	NextLine     []models.BookingResponse `json:"nextLine"`
	WaitingToday []models.BookingResponse `json:"waitingToday"`
	Upcoming     []models.BookingResponse `json:"upcoming"`
}

// FromUseCaseDashboard конвертирует корзины панели в HTTP модель
func FromUseCaseDashboard(d *dashboardUC.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		ServicingNow: models.FromDomainBookingList(d.ServicingNow).Bookings,
		NextLine:     models.FromDomainBookingList(d.NextLine).Bookings,
		WaitingToday: models.FromDomainBookingList(d.WaitingToday).Bookings,
		Upcoming:     models.FromDomainBookingList(d.Upcoming).Bookings,
	}
}

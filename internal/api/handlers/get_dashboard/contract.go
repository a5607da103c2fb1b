package get_dashboard

import (
	"context"

	dashboardUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_dashboard"
)

type UseCase interface {
	ForVendor(ctx context.Context, vendorID string) (*dashboardUC.Dashboard, error)
	ServicingNow(ctx context.Context) (*dashboardUC.Dashboard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

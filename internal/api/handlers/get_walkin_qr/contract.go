package get_walkin_qr

import (
	"context"

	generateQR "github.com/m04kA/SMC-SalonBooking/internal/usecase/generate_walkin_qr"
)

type UseCase interface {
	Execute(ctx context.Context, ownerID string) (*generateQR.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

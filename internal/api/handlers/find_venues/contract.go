package find_venues

import (
	"context"

	findVenues "github.com/m04kA/EventSync-BookingService/internal/usecase/find_venues"
)

type FindVenuesUseCase interface {
	Execute(ctx context.Context, req *findVenues.Request) (*findVenues.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

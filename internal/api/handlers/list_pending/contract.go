package list_pending

import (
	"context"

	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

type RequestService interface {
	ListPending(ctx context.Context, adminID string) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

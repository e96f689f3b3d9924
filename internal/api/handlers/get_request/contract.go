package get_request

import (
	"context"

	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

type RequestService interface {
	GetRequest(ctx context.Context, requestID string, userID string) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package expire_requests

import (
	"context"

	expireRequests "github.com/m04kA/EventSync-BookingService/internal/usecase/expire_requests"
)

type ExpireRequestsUseCase interface {
	Execute(ctx context.Context) (*expireRequests.Response, error)
}

type AdminChecker interface {
	IsAdmin(userID string) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

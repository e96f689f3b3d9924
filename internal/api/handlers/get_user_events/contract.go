package get_user_events

import (
	"context"

	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

type EventService interface {
	GetApprovedForUser(ctx context.Context, viewerID, userID string) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

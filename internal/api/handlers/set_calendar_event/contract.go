package set_calendar_event

import (
	"context"

	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

type EventService interface {
	SetCalendarEventID(ctx context.Context, eventID string, req *models.SetCalendarEventRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

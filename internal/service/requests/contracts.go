package requests

import (
	"context"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.EventRequest, error)
	GetByUserID(ctx context.Context, userID string, status *domain.RequestStatus) ([]*domain.EventRequest, error)
	ListPending(ctx context.Context) ([]*domain.EventRequest, error)
	ListByPeriod(ctx context.Context, filter domain.RequestsPeriodFilter) ([]*domain.EventRequest, error)
}

// EventRepository интерфейс репозитория одобренных мероприятий
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ApprovedEvent, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.ApprovedEvent, error)
	SetCalendarEventID(ctx context.Context, id, calendarEventID string) error
}

// AdminChecker проверяет права администратора
type AdminChecker interface {
	IsAdmin(userID string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

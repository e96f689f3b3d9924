package reject_request

import (
	"context"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.EventRequest, error)
	Resolve(ctx context.Context, id string, status domain.RequestStatus, resolvedBy, reason *string, resolvedAt time.Time) error
}

// OccupancyRepository интерфейс реестра занятости
type OccupancyRepository interface {
	ReleaseByRequest(ctx context.Context, requestID string) (int64, error)
}

// AdminChecker проверяет права администратора
type AdminChecker interface {
	IsAdmin(userID string) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий жизненного цикла заявки
type EventPublisher interface {
	Publish(ctx context.Context, key string, ev events.RequestEvent) error
}

// Metrics интерфейс метрик workflow
type Metrics interface {
	IncBookingDecision(decision string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

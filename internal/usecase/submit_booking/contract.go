package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	"github.com/m04kA/EventSync-BookingService/pkg/slotlock"
)

// VenueRepository интерфейс каталога площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
}

// OccupancyRepository интерфейс реестра занятости
type OccupancyRepository interface {
	ListByVenueAndDate(ctx context.Context, venueID string, date time.Time) ([]domain.OccupiedSlot, error)
	Block(ctx context.Context, slot domain.OccupiedSlot) error
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.EventRequest) (*domain.EventRequest, error)
}

// SlotLocker интерфейс распределенного лока на площадку и дату
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (slotlock.ReleaseFunc, error)
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

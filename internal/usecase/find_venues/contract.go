package find_venues

import (
	"context"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/integrations/airanker"
)

// VenueCatalog интерфейс каталога площадок
type VenueCatalog interface {
	List(ctx context.Context) ([]domain.Venue, error)
}

// OccupancyRepository интерфейс реестра занятости
type OccupancyRepository interface {
	ListByDate(ctx context.Context, date time.Time) (map[string][]domain.OccupiedSlot, error)
}

// Ranker стратегия ранжирования кандидатов, прошедших жесткие фильтры
type Ranker interface {
	Name() string
	Rank(ctx context.Context, req *Request, candidates []Candidate) ([]Candidate, error)
}

// AIRankerClient интерфейс клиента внешнего сервиса ранжирования
type AIRankerClient interface {
	RankWithGracefulDegradation(ctx context.Context, req airanker.RankRequest) (*airanker.RankResponse, error)
}

// Metrics интерфейс метрик поиска
type Metrics interface {
	ObserveVenueCandidates(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package find_venues

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// UseCase use case подбора свободных площадок под мероприятие
type UseCase struct {
	catalog       VenueCatalog
	occupancyRepo OccupancyRepository
	deterministic Ranker
	delegate      Ranker
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// delegate может быть nil: тогда всегда используется детерминированное ранжирование
func NewUseCase(
	catalog VenueCatalog,
	occupancyRepo OccupancyRepository,
	delegate Ranker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:       catalog,
		occupancyRepo: occupancyRepo,
		deterministic: DeterministicRanker{},
		delegate:      delegate,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет подбор площадок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindVenues: date=%s, time=%s, duration=%.2fh, seats=%d, facilities=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours, req.SeatsRequired, req.FacilitiesRequired)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindVenues: validation failed: %v", err)
		return nil, err
	}

	// 2. Запрошенный слот
	slot, err := domain.NewTimeSlot(req.Date, req.StartTime, req.DurationHours)
	if err != nil {
		uc.logger.Warn("FindVenues: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Каталог и занятость на дату
	venues, err := uc.catalog.List(ctx)
	if err != nil {
		uc.logger.Error("FindVenues: failed to list venues: %v", err)
		return nil, fmt.Errorf("%w: failed to list venues: %v", ErrInternal, err)
	}

	occupiedByVenue, err := uc.occupancyRepo.ListByDate(ctx, slot.Date)
	if err != nil {
		uc.logger.Error("FindVenues: failed to get occupancy for %s: %v", slot.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get occupancy: %v", ErrInternal, err)
	}

	// 4. Жесткий фильтр по времени и мягкий по оборудованию
	candidates := make([]Candidate, 0, len(venues))
	for _, venue := range venues {
		occupied := occupiedByVenue[venue.ID]
		if _, busy := domain.ConflictsWith(slot, occupied); busy {
			continue
		}

		c, ok := buildCandidate(req, venue, occupiedKeys(occupied))
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	// 5. Ранжирование
	ranked, rankedBy := uc.rank(ctx, req, candidates)

	uc.metrics.ObserveVenueCandidates(len(ranked))
	uc.logger.Info("FindVenues: %d of %d venues match slot %s, ranked by %s",
		len(ranked), len(venues), slot, rankedBy)

	return &Response{
		Date:     slot.Date,
		SlotKey:  slot.Key(),
		RankedBy: rankedBy,
		Venues:   ranked,
	}, nil
}

// rank выбирает стратегию: AI при наличии контекста мероприятия, иначе детерминированная
// Ошибка AI-стратегии не прерывает поиск
func (uc *UseCase) rank(ctx context.Context, req *Request, candidates []Candidate) ([]Candidate, string) {
	if uc.delegate != nil && strings.TrimSpace(req.EventName) != "" && len(candidates) > 0 {
		ranked, err := uc.delegate.Rank(ctx, req, candidates)
		if err == nil {
			return ranked, uc.delegate.Name()
		}
		uc.logger.Warn("FindVenues: %s ranking failed, falling back to %s: %v",
			uc.delegate.Name(), uc.deterministic.Name(), err)
	}

	ranked, _ := uc.deterministic.Rank(ctx, req, candidates)
	return ranked, uc.deterministic.Name()
}

func occupiedKeys(slots []domain.OccupiedSlot) []string {
	keys := make([]string, 0, len(slots))
	for _, s := range slots {
		keys = append(keys, s.Key())
	}
	return keys
}
